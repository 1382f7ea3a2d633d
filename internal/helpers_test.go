package internal

import "testing"

func TestCleanUpFileName(t *testing.T) {
	fakeNames := make(map[string]string)
	fakeNames[""] = ""
	fakeNames["receipt.jpg"] = "receipt"
	fakeNames["IMG_0042.JPG"] = "IMG_0042"
	fakeNames["@kim's receipt!.png"] = "kimsreceipt"

	for k, v := range fakeNames {
		if clean := CleanUpFileName(k); clean != v {
			t.Errorf("expected %s got %s", v, clean)
		}
	}
}

func TestRandStringRunes(t *testing.T) {
	a, b := RandStringRunes(16), RandStringRunes(16)
	if len(a) != 16 || len(b) != 16 {
		t.Errorf("expected 16 characters got %d and %d", len(a), len(b))
	} else if a == b {
		t.Error("two random strings should not match")
	}
}

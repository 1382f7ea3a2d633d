package extra

// JPEG/EXIF orientation extraction. This is a byte-cursor scan, not a full
// decoder: it walks marker segments up to the image data, finds the APP1
// Exif block and reads tag 0x0112 from IFD0. Every read re-validates the
// declared lengths against the buffer, a malformed file yields the identity
// orientation instead of an error.

const (
	// orientation metadata sits near the start of a well-formed file,
	// scanning further is wasted work on multi-megabyte photos.
	orientationScanLimit = 64 << 10

	orientationTag = 0x0112
)

// ReadOrientation returns the EXIF orientation (1..8) of a JPEG buffer.
// Non-JPEG input, a missing tag or any malformed structure returns 1.
func ReadOrientation(data []byte) int {
	if len(data) > orientationScanLimit {
		data = data[:orientationScanLimit]
	}

	// SOI marker
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return 1
	}

	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return 1
		}

		marker := data[pos+1]

		// markers without a length payload
		if marker == 0xFF {
			pos++
			continue
		}
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7) {
			pos += 2
			continue
		}

		// image data or end of image, no Exif past this point
		if marker == 0xDA || marker == 0xD9 {
			return 1
		}

		length := int(data[pos+2])<<8 | int(data[pos+3])
		if length < 2 || pos+2+length > len(data) {
			return 1
		}

		if marker == 0xE1 {
			if o := parseExifSegment(data[pos+4 : pos+2+length]); o != 0 {
				return o
			}
		}

		pos += 2 + length
	}

	return 1
}

// parseExifSegment reads the TIFF structure of an APP1 payload and returns
// the orientation, or 0 when the segment carries none.
func parseExifSegment(seg []byte) int {
	// "Exif\0\0" signature
	if len(seg) < 6 || seg[0] != 'E' || seg[1] != 'x' || seg[2] != 'i' || seg[3] != 'f' || seg[4] != 0 || seg[5] != 0 {
		return 0
	}

	tiff := seg[6:]
	if len(tiff) < 8 {
		return 0
	}

	// byte order marker: II (Intel) or MM (Motorola)
	var littleEndian bool
	if tiff[0] == 0x49 && tiff[1] == 0x49 {
		littleEndian = true
	} else if tiff[0] == 0x4D && tiff[1] == 0x4D {
		littleEndian = false
	} else {
		return 0
	}

	read16 := func(off int) uint16 {
		if off < 0 || off+2 > len(tiff) {
			return 0
		}
		if littleEndian {
			return uint16(tiff[off]) | uint16(tiff[off+1])<<8
		}
		return uint16(tiff[off])<<8 | uint16(tiff[off+1])
	}

	read32 := func(off int) uint32 {
		if off < 0 || off+4 > len(tiff) {
			return 0
		}
		if littleEndian {
			return uint32(tiff[off]) | uint32(tiff[off+1])<<8 | uint32(tiff[off+2])<<16 | uint32(tiff[off+3])<<24
		}
		return uint32(tiff[off])<<24 | uint32(tiff[off+1])<<16 | uint32(tiff[off+2])<<8 | uint32(tiff[off+3])
	}

	// TIFF magic number
	if read16(2) != 42 {
		return 0
	}

	ifdOffset := read32(4)
	if ifdOffset < 8 || uint64(ifdOffset)+2 > uint64(len(tiff)) {
		return 0
	}

	numEntries := int(read16(int(ifdOffset)))

	// entries are 12 bytes, clamp the count to what actually fits
	if max := (len(tiff) - int(ifdOffset) - 2) / 12; numEntries > max {
		numEntries = max
	}

	entryOffset := int(ifdOffset) + 2
	for i := 0; i < numEntries; i++ {
		if read16(entryOffset) == orientationTag {
			// SHORT with a count of one, anything else is malformed
			if read16(entryOffset+2) != 3 || read32(entryOffset+4) != 1 {
				return 0
			}

			if v := int(read16(entryOffset + 8)); v >= 1 && v <= 8 {
				return v
			}
			return 0
		}

		entryOffset += 12
	}

	return 0
}

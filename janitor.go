package receiptwire

import (
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/receiptwirehq/core/config"
)

// janitor sweeps receipt records past the retention window. Receipts are
// forwarded downstream on completion, they only need to live here long
// enough for reconciliation.
type janitor struct {
	scheduler *gocron.Scheduler
}

func startJanitor() *janitor {
	days, err := strconv.Atoi(config.Current.RetentionDays)
	if err != nil || days <= 0 {
		return nil
	}

	j := &janitor{scheduler: gocron.NewScheduler(time.UTC)}

	if _, err := j.scheduler.Every(1).Day().At("03:00").Do(j.sweep, days); err != nil {
		applog.Error().Err(err).Msg("unable to schedule the retention sweep")
		return nil
	}

	j.scheduler.StartAsync()
	return j
}

func (j *janitor) sweep(days int) {
	cutoff := time.Now().AddDate(0, 0, -days)

	files, err := datastore.ListFilesBefore(cutoff)
	if err != nil {
		applog.Error().Err(err).Msg("retention sweep cannot list files")
		return
	}

	for _, f := range files {
		if err := storer.Delete(f.Key); err != nil {
			applog.Error().Err(err).Msgf("retention sweep cannot delete blob %s", f.Key)
			continue
		}
		if err := storer.Delete(variantKey(f.Key)); err != nil {
			applog.Error().Err(err).Msgf("retention sweep cannot delete variant of %s", f.Key)
		}

		if err := datastore.DeleteFile(f.ID); err != nil {
			applog.Error().Err(err).Msgf("retention sweep cannot delete record %s", f.ID)
		}
	}

	if len(files) > 0 {
		applog.Info().Msgf("retention sweep removed %d receipts", len(files))
	}
}

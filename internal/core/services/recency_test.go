package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

func TestBaseline(t *testing.T) {
	t.Run("returns latest creation date", func(t *testing.T) {
		records := map[string]domain.DirectoryRecord{
			"100": {Created: day(2012, 3, 1)},
			"200": {Created: day(2014, 10, 1)},
			"300": {Created: day(2013, 6, 15)},
		}
		assert.Equal(t, day(2014, 10, 1), Baseline(records))
	})

	t.Run("zero without records", func(t *testing.T) {
		assert.True(t, Baseline(nil).IsZero())
	})
}

func TestClassifyRecency(t *testing.T) {
	baseline := day(2014, 10, 1)

	t.Run("creation before baseline is strange", func(t *testing.T) {
		nh := testHit("Q1", "400", 3)
		part := &domain.Partition{All: []*domain.Hit{nh}, Unknown: []*domain.Hit{nh}}
		records := map[string]domain.DirectoryRecord{
			"400": {Created: day(2014, 9, 30)},
		}

		ClassifyRecency(part, records, baseline)

		require.Len(t, part.Strange, 1)
		assert.Equal(t, domain.StatusStrange, nh.Status)
		assert.Empty(t, part.Unknown)
	})

	t.Run("creation exactly at baseline is new", func(t *testing.T) {
		nh := testHit("Q1", "400", 3)
		part := &domain.Partition{All: []*domain.Hit{nh}, Unknown: []*domain.Hit{nh}}
		records := map[string]domain.DirectoryRecord{
			"400": {Created: baseline},
		}

		ClassifyRecency(part, records, baseline)

		require.Len(t, part.New, 1)
		assert.Equal(t, domain.StatusNew, nh.Status)
	})

	t.Run("creation after baseline is new", func(t *testing.T) {
		nh := testHit("Q1", "400", 3)
		part := &domain.Partition{All: []*domain.Hit{nh}, Unknown: []*domain.Hit{nh}}
		records := map[string]domain.DirectoryRecord{
			"400": {Created: day(2015, 1, 1)},
		}

		ClassifyRecency(part, records, baseline)

		assert.Len(t, part.New, 1)
	})

	t.Run("everything is new without a baseline", func(t *testing.T) {
		nh := testHit("Q1", "400", 3)
		part := &domain.Partition{All: []*domain.Hit{nh}, Unknown: []*domain.Hit{nh}}
		records := map[string]domain.DirectoryRecord{
			"400": {Created: day(1990, 1, 1)},
		}

		ClassifyRecency(part, records, time.Time{})

		assert.Len(t, part.New, 1)
		assert.Empty(t, part.Strange)
	})
}

package parser

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tidefield/wrapped/internal/domain"
)

// summaryEntrySuffix names the JSON entry inside the packaged account export.
const summaryEntrySuffix = "summarizedActivities.json"

// archiveDistanceDivisor rescales the packaged export's distances to
// kilometers: the source stores centimeters (meters scaled by 100).
const archiveDistanceDivisor = 1000 * 100

// ErrSummaryEntryMissing is returned when the archive does not contain the
// summarized-activities JSON entry.
var ErrSummaryEntryMissing = errors.New("summarized activities entry not found in archive")

var errNoActivityList = errors.New("summarized activities list missing")

type summarizedExport struct {
	SummarizedActivitiesExport []archiveActivity `json:"summarizedActivitiesExport"`
}

type archiveActivity struct {
	// StartTimeGMT is an epoch value in milliseconds in current exports
	// and a formatted timestamp string in older ones.
	StartTimeGMT json.RawMessage `json:"startTimeGmt"`
	ActivityType string          `json:"activityType"`
	Distance     *float64        `json:"distance"`
}

// startTime interprets the export's GMT start timestamp.
func (a archiveActivity) startTime() (time.Time, bool) {
	if len(a.StartTimeGMT) == 0 {
		return time.Time{}, false
	}

	var millis int64
	if err := json.Unmarshal(a.StartTimeGMT, &millis); err == nil {
		return time.UnixMilli(millis).UTC(), true
	}

	var text string
	if err := json.Unmarshal(a.StartTimeGMT, &text); err != nil {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02 15:04:05.0", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseActivityArchive unpacks the compressed account export, locates the
// summarized-activities JSON entry and maps it into monthly rows. Failures
// to unpack, locate, or decode the entry are file-level errors; individual
// activities outside the target year or without a usable distance are
// skipped. Rows sharing a (month, activity type) pair are summed.
func ParseActivityArchive(data []byte, opts ActivitiesOptions) ([]domain.MonthlyActivity, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	var entry *zip.File
	for _, f := range reader.File {
		if strings.HasSuffix(f.Name, summaryEntrySuffix) {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, ErrSummaryEntryMissing
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", entry.Name, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", entry.Name, err)
	}

	activities, err := decodeSummarizedActivities(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", entry.Name, err)
	}

	targetYear := opts.targetYear()
	acc := newActivityAccumulator()

	for _, activity := range activities {
		start, ok := activity.startTime()
		if !ok || start.Year() != targetYear {
			continue
		}
		// Activities without a usable distance are dropped, matching the
		// CSV extractors.
		if activity.Distance == nil {
			continue
		}

		month := domain.MonthTokens[start.Month()-1] + " " + fmt.Sprint(start.Year())
		acc.add(activityKey{Month: month, Type: activity.ActivityType}, *activity.Distance/archiveDistanceDivisor)
	}

	return acc.rows(), nil
}

// decodeSummarizedActivities tolerates the one level of array nesting the
// export wraps around the summary object.
func decodeSummarizedActivities(raw []byte) ([]archiveActivity, error) {
	var nested [][]summarizedExport
	if err := json.Unmarshal(raw, &nested); err == nil {
		for _, group := range nested {
			for _, exp := range group {
				if exp.SummarizedActivitiesExport != nil {
					return exp.SummarizedActivitiesExport, nil
				}
			}
		}
		return nil, errNoActivityList
	}

	var flat []summarizedExport
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	for _, exp := range flat {
		if exp.SummarizedActivitiesExport != nil {
			return exp.SummarizedActivitiesExport, nil
		}
	}
	return nil, errNoActivityList
}

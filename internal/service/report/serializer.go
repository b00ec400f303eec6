package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"PowerPos/internal/domain/models"
)

const (
	// FilePrefix and FilePattern define the report naming scheme shared by
	// the writer and the retention cleaner.
	FilePrefix  = "PowerPosition"
	FilePattern = FilePrefix + "_*.csv"

	headerLine  = "Local Time,Volume"
	errorToken  = "ERROR"
	timeLayout  = "2006-01-02 15:04:05"
	stampLayout = "20060102_1504"
)

// ErrorInfo carries the failure recorded in a fallback report header.
type ErrorInfo struct {
	Category string
	Message  string
}

// GenerateFileName derives the report file name from the extraction time,
// to the minute. Error reports get an _ERROR suffix before the extension.
func GenerateFileName(extractTime time.Time, isError bool) string {
	name := fmt.Sprintf("%s_%s", FilePrefix, extractTime.Format(stampLayout))
	if isError {
		name += "_ERROR"
	}
	return name + ".csv"
}

// Serialize renders aggregated volumes as report CSV. A nil errInfo yields
// the normal variant with volumes to one decimal place; a non-nil errInfo
// yields the fallback variant: four #-prefixed header lines and the ERROR
// placeholder in every row.
func Serialize(vols *models.AggregatedVolumes, errInfo *ErrorInfo, extractTime, generated time.Time) string {
	var b strings.Builder

	if errInfo != nil {
		b.WriteString("# Report generation failed; volumes below are placeholders\n")
		fmt.Fprintf(&b, "# ERROR: %s: %s\n", errInfo.Category, errInfo.Message)
		fmt.Fprintf(&b, "# Extract Time: %s\n", extractTime.Format(timeLayout))
		fmt.Fprintf(&b, "# Generated: %s\n", generated.Format(timeLayout))
	}

	b.WriteString(headerLine)
	for _, label := range vols.Labels() {
		b.WriteByte('\n')
		b.WriteString(label)
		b.WriteByte(',')
		if errInfo != nil {
			b.WriteString(errorToken)
		} else {
			v, _ := vols.Get(label)
			b.WriteString(strconv.FormatFloat(v, 'f', 1, 64))
		}
	}
	return b.String()
}

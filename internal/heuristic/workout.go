package heuristic

import (
	"regexp"
	"strings"

	"scanvault/internal/domain"
)

var (
	weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

	weekdayPattern       = regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	workoutSignalPattern = regexp.MustCompile(`\b(workout|exercise|schedule|rest day|cardio|biceps|triceps|legs|chest|back|lats)\b`)
	receiptSignalPattern = regexp.MustCompile(`\b(receipt|invoice|subtotal|tax|total|cashier|payment)\b`)

	workoutLineCleaner = regexp.MustCompile(`[^a-zA-Z0-9&\s-]`)
	whitespaceRun      = regexp.MustCompile(`\s+`)
	restDayPattern     = regexp.MustCompile(`(?i)rest day`)

	ocrAmpersand = regexp.MustCompile(`\b6\b`)
	biceAbbrev   = regexp.MustCompile(`(?i)\bbice\b`)
	latsAbbrev   = regexp.MustCompile(`(?i)\blats?\b`)
	wordStart    = regexp.MustCompile(`\b\w`)
)

// shouldParseWorkoutSchedule gates the weekly-schedule parser: at least two
// distinct weekday names plus a workout keyword, and no receipt signal.
// Receipt signal always wins.
func shouldParseWorkoutSchedule(text string) bool {
	lowered := strings.ToLower(text)
	if receiptSignalPattern.MatchString(lowered) {
		return false
	}
	distinct := map[string]bool{}
	for _, m := range weekdayPattern.FindAllString(lowered, -1) {
		distinct[m] = true
	}
	return len(distinct) >= 2 && workoutSignalPattern.MatchString(lowered)
}

// parseWorkoutSchedule turns weekday lines into workout_{weekday} fields.
// Lines are scrubbed of OCR noise before matching; a detected rest day is
// reported as rest_day = "Sunday".
func parseWorkoutSchedule(text string) []domain.ExtractedField {
	schedule := map[string]string{}

	for _, raw := range strings.Split(text, "\n") {
		line := whitespaceRun.ReplaceAllString(workoutLineCleaner.ReplaceAllString(raw, " "), " ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lowered := strings.ToLower(line)
		day := ""
		for _, d := range weekdays {
			if strings.Contains(lowered, d) {
				day = d
				break
			}
		}
		if day == "" {
			if restDayPattern.MatchString(line) {
				schedule["sunday"] = "Rest Day"
			}
			continue
		}

		idx := strings.Index(lowered, day)
		remainder := strings.TrimLeft(line[:idx]+line[idx+len(day):], " \t:-")
		if remainder != "" {
			schedule[day] = normalizeWorkout(remainder)
		} else if day == "sunday" && strings.Contains(lowered, "rest") {
			schedule["sunday"] = "Rest Day"
		}
	}

	fields := []domain.ExtractedField{}
	for _, day := range weekdays {
		workout, ok := schedule[day]
		if !ok {
			continue
		}
		fields = addField(fields, "workout_"+day, workout, "")
	}
	if schedule["sunday"] == "Rest Day" {
		fields = addField(fields, "rest_day", "Sunday", "")
	}
	return fields
}

// normalizeWorkout repairs common OCR misreads ("6" for "&") and expands
// clipped exercise abbreviations before title-casing.
func normalizeWorkout(s string) string {
	s = ocrAmpersand.ReplaceAllString(s, "&")
	s = biceAbbrev.ReplaceAllString(s, "Biceps")
	s = latsAbbrev.ReplaceAllString(s, "Lats")
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	return wordStart.ReplaceAllStringFunc(s, strings.ToUpper)
}

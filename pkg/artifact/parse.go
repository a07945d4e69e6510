package artifact

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
)

// segmentRe matches the tagged regions of a response: fenced code/chart
// blocks and paired followup_questions tags. Unterminated fences do not
// match and therefore fall through as plain text.
var segmentRe = regexp.MustCompile("(?s)```([A-Za-z0-9_+-]*)[ \t]*\r?\n(.*?)```|<followup_questions>(.*?)</followup_questions>")

// bulletRe strips list markers from follow-up question lines.
var bulletRe = regexp.MustCompile(`^(?:[-*]|\d+[.)])\s*`)

// Parse splits a response into ordered typed segments. Untagged stretches
// become text segments; blank stretches are dropped. Parse never fails: a
// malformed tagged region degrades to a text segment.
func Parse(response string) []Segment {
	var segments []Segment
	last := 0
	for _, m := range segmentRe.FindAllStringSubmatchIndex(response, -1) {
		appendText(&segments, response[last:m[0]])
		raw := response[m[0]:m[1]]
		switch {
		case m[4] >= 0: // fenced block: groups 1 (language) and 2 (body)
			lang := response[m[2]:m[3]]
			body := response[m[4]:m[5]]
			segments = append(segments, fenceSegment(lang, body, raw))
		case m[6] >= 0: // followup block: group 3
			segments = append(segments, Segment{
				Kind:      KindFollowups,
				Questions: parseQuestions(response[m[6]:m[7]]),
			})
		}
		last = m[1]
	}
	appendText(&segments, response[last:])
	return segments
}

// appendText adds a text segment unless the stretch is blank.
func appendText(segments *[]Segment, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	*segments = append(*segments, Segment{Kind: KindText, Text: text})
}

// fenceSegment classifies one fenced block. The "chart" language tag marks
// a chart artifact whose body is either a JSON figure or a single URL
// line; every other tag is a code artifact, with python as the default
// register.
func fenceSegment(lang, body, raw string) Segment {
	if !strings.EqualFold(lang, "chart") {
		if lang == "" {
			lang = "python"
		}
		return Segment{Kind: KindCode, Language: strings.ToLower(lang), Text: body}
	}

	trimmed := strings.TrimSpace(body)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if !strings.ContainsAny(trimmed, " \t\n") {
			return Segment{Kind: KindChart, Ref: trimmed}
		}
	}
	if strings.HasPrefix(trimmed, "{") {
		var fig models.Figure
		if err := json.Unmarshal([]byte(trimmed), &fig); err == nil {
			return Segment{Kind: KindChart, Figure: &fig}
		}
	}
	// Neither a figure nor a reference; degrade to text.
	return Segment{Kind: KindText, Text: raw}
}

// parseQuestions splits a followup block body into one question per
// non-blank line, stripping list markers.
func parseQuestions(body string) []string {
	var questions []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = bulletRe.ReplaceAllString(line, "")
		if line != "" {
			questions = append(questions, line)
		}
	}
	return questions
}

// Package artifact splits model response text into an ordered sequence of
// typed content segments: plain text, code artifacts, chart artifacts, and
// follow-up question blocks. The presentation layer uses the segment kind
// to pick a renderer; this package never performs I/O, so a chart artifact
// that references a remote figure carries only the URL.
package artifact

import "github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"

// Kind identifies the content type of a segment.
type Kind string

const (
	// KindText is untagged prose.
	KindText Kind = "text"
	// KindCode is a fenced code block.
	KindCode Kind = "code_artifact"
	// KindChart is a fenced chart block carrying an inline figure or a
	// reference URL.
	KindChart Kind = "chart_artifact"
	// KindFollowups is a follow-up question block.
	KindFollowups Kind = "followup_questions"
)

// Segment is one typed region of a response, in document order.
type Segment struct {
	// Kind identifies which payload fields are set.
	Kind Kind
	// Text holds prose for text segments and source for code segments.
	Text string
	// Language is the code fence language tag ("python" when omitted).
	Language string
	// Figure is the inline chart specification, when the chart block
	// embeds one.
	Figure *models.Figure
	// Ref is the URL of a remote figure, when the chart block references
	// one instead. Resolving it is the caller's concern.
	Ref string
	// Questions holds the follow-up block's questions, one per line of
	// the source block.
	Questions []string
}

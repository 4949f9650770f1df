package slack_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sheetcast/pkg/service/slack"
)

func TestEscapeMrkdwn(t *testing.T) {
	gt.Value(t, slack.EscapeMrkdwn("a < b & c > d")).Equal("a &lt; b &amp; c &gt; d")
	gt.Value(t, slack.EscapeMrkdwn("plain")).Equal("plain")
}

func TestTruncateText(t *testing.T) {
	gt.Value(t, slack.TruncateText("short", 10)).Equal("short")
	gt.Value(t, slack.TruncateText("abcdef", 4)).Equal("abc…")
	gt.Value(t, slack.TruncateText("日本語テキスト", 3)).Equal("日本…")
	gt.Value(t, slack.TruncateText("x", 0)).Equal("")
}

func TestTruncateToMaxBytes(t *testing.T) {
	gt.Value(t, slack.TruncateToMaxBytes("hello", 10)).Equal("hello")
	gt.Value(t, slack.TruncateToMaxBytes("hello", 3)).Equal("hel")
	// "あ" is 3 bytes; cutting at 4 must not split the second rune
	gt.Value(t, slack.TruncateToMaxBytes("ああ", 4)).Equal("あ")
	gt.Value(t, slack.TruncateToMaxBytes("abc", 0)).Equal("")
}

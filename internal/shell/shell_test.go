package shell

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dyluth/noticeboard/internal/api"
	"github.com/dyluth/noticeboard/internal/board"
	"github.com/dyluth/noticeboard/internal/composer"
	"github.com/dyluth/noticeboard/internal/printer"
	"github.com/dyluth/noticeboard/internal/roster"
	"github.com/dyluth/noticeboard/internal/testutil"
	"github.com/dyluth/noticeboard/pkg/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seededID = "abcdef12-8d4b-4f6a-9c1e-2b7d5e8f0a13"

// runSession plays input against a fresh session and returns everything it printed.
func runSession(t *testing.T, fake *testutil.FakeAPI, caps board.Capabilities, input string) string {
	t.Helper()
	printer.SetColor(false)
	t.Cleanup(func() { printer.SetColor(true) })

	client, err := api.NewClient(fake.URL, &http.Client{Timeout: 5 * time.Second})
	require.NoError(t, err)

	var out bytes.Buffer
	s, err := New(client, strings.NewReader(input), &out, Options{Capabilities: caps, Location: time.UTC})
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func rich() board.Capabilities { return board.VariantRich.Capabilities() }

func TestSession_EmptyBoardThenPost(t *testing.T) {
	fake := testutil.NewFakeAPI(t)

	out := runSession(t, fake, rich(), "n\nHi\nthere\nBob\nhigh\n\nq\n")

	assert.True(t, strings.HasPrefix(out, printer.LoadingText), "loading indicator comes first")

	empty := strings.Index(out, "暂无留言")
	card := strings.Index(out, "🟠 高")
	require.NotEqual(t, -1, empty, "empty state shown before the post")
	require.NotEqual(t, -1, card, "new card shown after the post")
	assert.Less(t, empty, card)
	assert.Contains(t, out, "共 1 条留言")

	creates := fake.Creates()
	require.Len(t, creates, 1)
	assert.Equal(t, notice.CreateMessageRequest{Title: "Hi", Content: "there", Author: "Bob", Priority: notice.PriorityHigh}, creates[0])
	assert.Equal(t, 2, fake.Calls(testutil.RouteList), "initial load plus one reload")
}

func TestSession_IncompleteFormKeepsDraft(t *testing.T) {
	fake := testutil.NewFakeAPI(t)

	// First attempt leaves the author blank; the second fills only the author
	input := "n\nHi\nthere\n\n\n\nn\n\n\nBob\n\n\nq\n"
	out := runSession(t, fake, rich(), input)

	assert.Contains(t, out, composer.IncompletePrompt)
	assert.Contains(t, out, "标题 [Hi]: ", "draft value offered again")
	assert.Contains(t, out, "表单已打开")

	creates := fake.Creates()
	require.Len(t, creates, 1)
	assert.Equal(t, "Bob", creates[0].Author)
	assert.Equal(t, notice.PriorityNormal, creates[0].Priority)
}

func TestSession_InvalidPriorityAsksAgain(t *testing.T) {
	fake := testutil.NewFakeAPI(t)

	out := runSession(t, fake, rich(), "n\nHi\nthere\nBob\nsevere\nurgent\n\nq\n")

	assert.Contains(t, out, "invalid priority")
	require.Len(t, fake.Creates(), 1)
	assert.Equal(t, notice.PriorityUrgent, fake.Creates()[0].Priority)
}

func TestSession_ExpiryIsSent(t *testing.T) {
	fake := testutil.NewFakeAPI(t)

	out := runSession(t, fake, rich(), "n\nHi\nthere\nBob\n\nyesterday\n24h\nq\n")

	assert.Contains(t, out, "invalid time specification")
	require.Len(t, fake.Creates(), 1)
	require.NotNil(t, fake.Creates()[0].ExpiresAt)
	assert.True(t, fake.Creates()[0].ExpiresAt.After(time.Now()))
	assert.Contains(t, out, "有效期至")
}

func TestSession_Delete(t *testing.T) {
	t.Run("confirmed delete removes the message", func(t *testing.T) {
		fake := testutil.NewFakeAPI(t)
		fake.Seed(notice.Message{ID: seededID, Title: "Bins", Content: "out tonight", Author: "Alex", Priority: notice.PriorityUrgent})

		out := runSession(t, fake, rich(), "d abcdef\ny\nq\n")

		assert.Contains(t, out, roster.DeletePrompt)
		assert.Equal(t, 1, fake.Calls(testutil.RouteDelete))
		assert.Empty(t, fake.Snapshot())
		assert.Contains(t, out[strings.Index(out, roster.DeletePrompt):], "暂无留言")
	})

	t.Run("declined delete sends nothing", func(t *testing.T) {
		fake := testutil.NewFakeAPI(t)
		fake.Seed(notice.Message{ID: seededID, Title: "Bins", Content: "out tonight", Author: "Alex"})

		out := runSession(t, fake, rich(), "d abcdef\nn\nq\n")

		assert.Contains(t, out, "已取消")
		assert.Equal(t, 0, fake.Calls(testutil.RouteDelete))
		assert.Len(t, fake.Snapshot(), 1)
	})

	t.Run("server failure shows banner and keeps message", func(t *testing.T) {
		fake := testutil.NewFakeAPI(t)
		fake.Seed(notice.Message{ID: seededID, Title: "Bins", Content: "out tonight", Author: "Alex"})
		fake.Fail(testutil.RouteDelete, http.StatusInternalServerError)

		out := runSession(t, fake, rich(), "d abcdef\ny\nq\n")

		assert.Contains(t, out, "Failed to delete message")
		assert.Equal(t, 1, fake.Calls(testutil.RouteList), "no reload after a failed delete")
	})

	t.Run("unknown id is reported locally", func(t *testing.T) {
		fake := testutil.NewFakeAPI(t)

		out := runSession(t, fake, rich(), "d ffffff\nq\n")

		assert.Contains(t, out, "no messages found matching 'ffffff'")
		assert.Equal(t, 0, fake.Calls(testutil.RouteDelete))
	})
}

func TestSession_Toggle(t *testing.T) {
	t.Run("rich variant toggles", func(t *testing.T) {
		fake := testutil.NewFakeAPI(t)
		fake.Seed(notice.Message{ID: seededID, Title: "Bins", Content: "out tonight", Author: "Alex"})

		out := runSession(t, fake, rich(), "t abcdef\nq\n")

		assert.Equal(t, 1, fake.Calls(testutil.RouteToggle))
		assert.Contains(t, out, "已停用")
	})

	t.Run("simple variant refuses", func(t *testing.T) {
		fake := testutil.NewFakeAPI(t, testutil.WithSimpleVariant())
		fake.Seed(notice.Message{ID: seededID, Title: "Bins", Content: "out tonight", Author: "Alex"})

		out := runSession(t, fake, board.VariantSimple.Capabilities(), "t abcdef\nq\n")

		assert.Contains(t, out, board.ErrToggleUnsupported.Error())
		assert.NotContains(t, out, "已启用")
	})
}

func TestSession_BannerLifecycle(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.FailOnce(testutil.RouteList, http.StatusInternalServerError)

	out := runSession(t, fake, rich(), "x\nr\nq\n")

	assert.Equal(t, 1, strings.Count(out, "Failed to fetch messages"), "banner shown once, then dismissed")
	assert.Equal(t, 2, fake.Calls(testutil.RouteList))
}

func TestSession_CancelClosesForm(t *testing.T) {
	fake := testutil.NewFakeAPI(t)

	out := runSession(t, fake, rich(), "n\n\n\n\n\n\nc\nq\n")

	lastRender := out[strings.LastIndex(out, "暂无留言"):]
	assert.NotContains(t, lastRender, "表单已打开")
	assert.Empty(t, fake.Creates())
}

func TestSession_EndOfInput(t *testing.T) {
	fake := testutil.NewFakeAPI(t)

	out := runSession(t, fake, rich(), "h")

	assert.Contains(t, out, HelpText)
}

func TestSession_UnknownCommand(t *testing.T) {
	fake := testutil.NewFakeAPI(t)

	out := runSession(t, fake, rich(), "frobnicate\nq\n")

	assert.Contains(t, out, "unknown command 'frobnicate'")
}

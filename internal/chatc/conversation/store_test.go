package conversation

import (
	"sync"
	"testing"

	"github.com/longkey1/chatc/internal/chatc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AppendUser(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOK  bool
		wantLen int
	}{
		{name: "plain text", input: "Hi", wantOK: true, wantLen: 1},
		{name: "text with surrounding space is kept", input: "  Hi  ", wantOK: true, wantLen: 1},
		{name: "empty", input: "", wantOK: false, wantLen: 0},
		{name: "whitespace only", input: " \t\n ", wantOK: false, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			ok := s.AppendUser(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLen, s.Len())
			if tt.wantOK {
				assert.Equal(t, chatc.UserMessage(tt.input), s.Messages()[0])
			}
		})
	}
}

func TestStore_Order(t *testing.T) {
	s := NewStore()
	s.AppendUser("A")
	s.AppendAssistant("echo A")
	s.AppendUser("B")
	s.AppendAssistant("")

	want := []chatc.Message{
		{Role: chatc.RoleUser, Text: "A"},
		{Role: chatc.RoleAssistant, Text: "echo A"},
		{Role: chatc.RoleUser, Text: "B"},
		{Role: chatc.RoleAssistant, Text: ""},
	}
	assert.Equal(t, want, s.Messages())
}

func TestStore_MessagesIsCopy(t *testing.T) {
	s := NewStore()
	s.AppendUser("Hi")

	msgs := s.Messages()
	msgs[0].Text = "tampered"

	assert.Equal(t, "Hi", s.Messages()[0].Text)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore()

	var got [][]chatc.Message
	unsubscribe := s.Subscribe(func(msgs []chatc.Message) {
		got = append(got, msgs)
	})

	s.AppendUser("Hi")
	s.AppendUser("   ") // rejected, no notification
	s.AppendAssistant("Hello!")

	require.Len(t, got, 2)
	assert.Len(t, got[0], 1)
	assert.Len(t, got[1], 2)

	unsubscribe()
	s.AppendUser("again")
	assert.Len(t, got, 2)
}

func TestStore_SubscriberMayReadStore(t *testing.T) {
	s := NewStore()
	var lengths []int
	s.Subscribe(func([]chatc.Message) {
		lengths = append(lengths, s.Len())
	})

	s.AppendUser("Hi")
	s.AppendAssistant("Hello!")

	assert.Equal(t, []int{1, 2}, lengths)
}

func TestStore_ConcurrentReaders(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Messages()
				_ = s.Len()
			}
		}()
	}

	for i := 0; i < 100; i++ {
		s.AppendUser("msg")
	}
	wg.Wait()

	assert.Equal(t, 100, s.Len())
}

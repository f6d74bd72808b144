package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/longkey1/chatc/internal/chatc"
	"github.com/longkey1/chatc/internal/chatc/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveTranscript(t *testing.T, s *Storage, id string, updatedAt time.Time, messages ...chatc.Message) *Transcript {
	t.Helper()
	tr := New(&session.Session{ID: id, StartedAt: updatedAt.Add(-time.Minute)}, "http://localhost:5000/api/chat", messages)
	tr.UpdatedAt = updatedAt
	require.NoError(t, s.Save(tr))
	return tr
}

func TestStorage_SaveLoad(t *testing.T) {
	s := NewStorage(filepath.Join(t.TempDir(), "transcripts"))
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	saved := saveTranscript(t, s, "session_1729180000000_k3j9x0a1b", now,
		chatc.UserMessage("Hi"), chatc.AssistantMessage("Hello!"))

	loaded, err := s.Load(saved.SessionID)
	require.NoError(t, err)
	assert.Equal(t, saved.SessionID, loaded.SessionID)
	assert.Equal(t, saved.BackendURL, loaded.BackendURL)
	assert.True(t, saved.UpdatedAt.Equal(loaded.UpdatedAt))
	assert.Equal(t, saved.Messages, loaded.Messages)
	assert.Equal(t, 2, loaded.MessageCount())
	assert.Equal(t, "k3j9x0a1b", loaded.GetShortID())

	_, err = os.Stat(filepath.Join(s.Dir, saved.SessionID+".json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestStorage_SaveOverwrites(t *testing.T) {
	s := NewStorage(t.TempDir())
	now := time.Now()

	saveTranscript(t, s, "session_1_aaaaaaaaa", now, chatc.UserMessage("Hi"))
	saveTranscript(t, s, "session_1_aaaaaaaaa", now,
		chatc.UserMessage("Hi"), chatc.AssistantMessage("Hello!"))

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].MessageCount())
}

func TestStorage_ListSortedAndSkipsCorrupt(t *testing.T) {
	s := NewStorage(t.TempDir())
	base := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	saveTranscript(t, s, "session_1_older0000", base)
	saveTranscript(t, s, "session_2_newer0000", base.Add(time.Hour))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "broken.json"), []byte("{not json"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "notes.txt"), []byte("ignored"), 0644))

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "session_2_newer0000", list[0].SessionID)
	assert.Equal(t, "session_1_older0000", list[1].SessionID)
}

func TestStorage_ListMissingDir(t *testing.T) {
	s := NewStorage(filepath.Join(t.TempDir(), "does-not-exist"))
	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStorage_Find(t *testing.T) {
	s := NewStorage(t.TempDir())
	base := time.Now()

	saveTranscript(t, s, "session_1729180000000_abcd12345", base)
	saveTranscript(t, s, "session_1729180000001_abcd99999", base.Add(time.Second))
	saveTranscript(t, s, "session_1729180000002_zzzz00000", base.Add(2*time.Second))

	tests := []struct {
		name        string
		prefix      string
		want        string
		wantErr     error
		wantMatches int
	}{
		{name: "full id", prefix: "session_1729180000000_abcd12345", want: "session_1729180000000_abcd12345"},
		{name: "short id", prefix: "zzzz", want: "session_1729180000002_zzzz00000"},
		{name: "longer short id", prefix: "abcd9", want: "session_1729180000001_abcd99999"},
		{name: "latest", prefix: "latest", want: "session_1729180000002_zzzz00000"},
		{name: "ambiguous short id", prefix: "abcd", wantMatches: 2},
		{name: "ambiguous id prefix", prefix: "session_17291800", wantMatches: 3},
		{name: "no match", prefix: "qqqq", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Find(tt.prefix)
			switch {
			case tt.wantMatches > 0:
				var ambErr *AmbiguousIDError
				require.True(t, errors.As(err, &ambErr))
				assert.Len(t, ambErr.Matches, tt.wantMatches)
				assert.Contains(t, ambErr.Error(), "Ambiguous transcript ID")
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got.SessionID)
			}
		})
	}
}

func TestStorage_FindTooShort(t *testing.T) {
	_, err := NewStorage(t.TempDir()).Find("abc")
	assert.Error(t, err)
}

func TestStorage_LatestEmpty(t *testing.T) {
	_, err := NewStorage(t.TempDir()).Latest()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_Delete(t *testing.T) {
	s := NewStorage(t.TempDir())
	saveTranscript(t, s, "session_1_delete000", time.Now())

	require.NoError(t, s.Delete("session_1_delete000"))
	_, err := s.Load("session_1_delete000")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete("session_1_delete000"), ErrNotFound)
}

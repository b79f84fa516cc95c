package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"armory-server/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *domain.ReplaySession {
	return &domain.ReplaySession{
		Seed:      42,
		TickRate:  30,
		Timestamp: 1764806400,
		Actions: []domain.ReplayAction{
			{Tick: 0, Token: "p1", Action: domain.ActionJoin},
			{Tick: 3, Token: "p1", Action: domain.ActionInput, Payload: json.RawMessage(`{"key":"F1"}`)},
			{Tick: 40, Token: "p1", Action: domain.ActionLeave},
		},
	}
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	in := sampleSession()
	require.NoError(t, Encode(&buf, in))

	out, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecode_BadMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleSession()))
	raw := buf.Bytes()
	copy(raw, "CDRP")

	_, err := Decode(bytes.NewReader(raw))
	assert.True(t, errors.Is(err, ErrInvalidMagic), "got %v", err)
}

func TestDecode_Truncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleSession()))
	raw := buf.Bytes()

	_, err := Decode(bytes.NewReader(raw[:len(raw)-3]))
	assert.Error(t, err)
}

func TestEncode_TokenTooLong(t *testing.T) {
	s := sampleSession()
	s.Actions[0].Token = domain.PlayerID(bytes.Repeat([]byte("x"), 256))
	assert.Error(t, Encode(&bytes.Buffer{}, s))
}

func TestReplayService_SaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "replays")
	svc, err := NewReplayService(dir)
	require.NoError(t, err)

	in := sampleSession()
	path, err := svc.Save(in)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "replay_42_1764806400.wirp"), path)

	// Повторное сохранение перезаписывает тот же файл, временных не остается
	in.Actions = append(in.Actions, domain.ReplayAction{Tick: 41, Token: "p2", Action: domain.ActionJoin})
	_, err = svc.Save(in)
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	out, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = LoadFile(filepath.Join(dir, "missing.wirp"))
	assert.Error(t, err)
}

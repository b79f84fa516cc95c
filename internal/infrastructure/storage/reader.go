package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"

	"armory-server/internal/domain"

	"github.com/cockroachdb/errors"
)

var ErrInvalidMagic = errors.New("invalid magic")

// Больше команд в одном файле не бывает; защищает от мусора в заголовке.
const maxActions = 1 << 24

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	return LoadFile(path)
}

// LoadFile читает запись без ReplayService (утилиты, --replay).
func LoadFile(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open replay %s", path)
	}
	defer f.Close()

	session, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return session, nil
}

// Decode читает запись в формате WIRP.
func Decode(r io.Reader) (*domain.ReplaySession, error) {
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, errors.Wrapf(ErrInvalidMagic, "%q", header.Magic[:])
	}
	if header.Version != Version1 {
		return nil, errors.Newf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.ActionCount < 0 || header.ActionCount > maxActions {
		return nil, errors.Newf("bad action count: %d", header.ActionCount)
	}

	session := &domain.ReplaySession{
		Seed:      header.Seed,
		TickRate:  int(header.TickRate),
		Timestamp: header.Timestamp,
		Actions:   make([]domain.ReplayAction, header.ActionCount),
	}

	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, errors.Wrapf(err, "action %d header", i)
		}

		act := domain.ReplayAction{
			Tick:   int(ah.Tick),
			Action: domain.ActionType(ah.ActionType),
		}

		tokenBuf := make([]byte, ah.TokenLen)
		if _, err := io.ReadFull(r, tokenBuf); err != nil {
			return nil, errors.Wrapf(err, "action %d token", i)
		}
		act.Token = domain.PlayerID(tokenBuf)

		if ah.PayloadLen > 0 {
			act.Payload = make(json.RawMessage, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, errors.Wrapf(err, "action %d payload", i)
			}
		}

		session.Actions[i] = act
	}

	return session, nil
}

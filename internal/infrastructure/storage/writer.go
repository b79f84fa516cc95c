package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"armory-server/internal/domain"
	"armory-server/pkg/logger"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `WIRP` // 4 байта
	Version1    uint32 = 1
	Extension          = ".wirp"
)

// ReplayFileHeader - точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	TickRate    int32   // 4 байта
	ActionCount int32   // 4 байта
}

// ActionHeader - заголовок каждой записи действия.
type ActionHeader struct {
	Tick       int32  // 4
	ActionType uint8  // 1
	TokenLen   uint8  // 1
	PayloadLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create replay dir %s", dir)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// FileName - имя файла записи. Одна сессия сервера - один файл,
// автосохранение его перезаписывает.
func FileName(session *domain.ReplaySession) string {
	return fmt.Sprintf("replay_%d_%d%s", session.Seed, session.Timestamp, Extension)
}

// Save пишет запись во временный файл и атомарно переименовывает,
// чтобы читатель никогда не видел обрезанный файл.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	if session == nil {
		return "", errors.New("replay session is nil")
	}
	path := filepath.Join(s.SaveDir, FileName(session))

	f, err := os.CreateTemp(s.SaveDir, "replay-*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "create temp replay file")
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	bw := bufio.NewWriter(f)
	if err := Encode(bw, session); err != nil {
		f.Close()
		return "", errors.Wrapf(err, "encode %s", path)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return "", errors.Wrap(err, "flush replay")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "close replay")
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", errors.Wrapf(err, "rename replay to %s", path)
	}

	logger.WithComponent("replay").WithFields(logrus.Fields{
		"path":    path,
		"actions": len(session.Actions),
	}).Info("Replay saved")
	return path, nil
}

// Encode пишет запись в бинарном формате WIRP.
func Encode(w io.Writer, s *domain.ReplaySession) error {
	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		TickRate:    int32(s.TickRate),
		ActionCount: int32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	for i, act := range s.Actions {
		tokenBytes := []byte(act.Token)
		if len(tokenBytes) > 255 {
			return errors.Newf("action %d: token too long: %d", i, len(tokenBytes))
		}

		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return errors.Newf("action %d: payload too long: %d", i, payloadLen)
		}

		actHeader := ActionHeader{
			Tick:       int32(act.Tick),
			ActionType: uint8(act.Action),
			TokenLen:   uint8(len(tokenBytes)),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return errors.Wrapf(err, "action %d header", i)
		}

		// Тело: токен и payload без разделителей
		if _, err := w.Write(tokenBytes); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}

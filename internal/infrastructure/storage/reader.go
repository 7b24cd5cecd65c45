package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"rotten-soup/internal/domain"
)

// Сколько команд выделять заранее, не глядя на заголовок
const preallocCommands = 1024

func (s *ReplayService) Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRecording(bufio.NewReader(f))
}

func ReadRecording(r io.Reader) (*Recording, error) {
	// 1. Читаем заголовок целиком
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.CommandCount < 0 {
		return nil, fmt.Errorf("negative command count: %d", header.CommandCount)
	}

	name := make([]byte, header.LevelNameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("failed to read level name: %w", err)
	}

	rec := &Recording{
		Seed:       header.Seed,
		Timestamp:  header.Timestamp,
		StartLevel: string(name),
		// Заголовку не доверяем: слайс растёт по мере чтения
		Commands: make([]RecordedCommand, 0, min(int(header.CommandCount), preallocCommands)),
	}

	// 2. Читаем команды
	for i := 0; i < int(header.CommandCount); i++ {
		var ch CommandHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}

		cmd := RecordedCommand{
			Seq:    int(ch.Seq),
			Action: domain.ActionType(ch.Action),
		}
		if ch.PayloadLen > 0 {
			cmd.Payload = make([]byte, ch.PayloadLen)
			if _, err := io.ReadFull(r, cmd.Payload); err != nil {
				return nil, fmt.Errorf("command %d payload: %w", i, err)
			}
		}

		rec.Commands = append(rec.Commands, cmd)
	}

	return rec, nil
}

package filestore

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/repository/inmemory"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	kindLink  = "link"
	kindEvent = "event"
)

var (
	ErrInvalidPath = errors.New("invalid file path")
	ErrReadFile    = errors.New("failed to read storage file")
	ErrWriteFile   = errors.New("failed to write storage file")
)

// record - одна строка файла (JSON Lines)
type record struct {
	Kind  string        `json:"kind"`
	Link  *models.Link  `json:"link,omitempty"`
	Event *models.Event `json:"event,omitempty"`
}

// Storage - хранилище в памяти, загружаемое из файла на старте
// и сохраняемое в файл при закрытии
type Storage struct {
	*inmemory.InmemoryStorage
	path string
	log  *zerolog.Logger
}

func New(ctx context.Context, log *zerolog.Logger, filePath string) (*Storage, error) {
	if filePath == "" {
		return nil, ErrInvalidPath
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	s := &Storage{
		InmemoryStorage: inmemory.NewStorage(),
		path:            absPath,
		log:             log,
	}

	count, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().Int("records", count).Str("path", absPath).Msg("storage file loaded")
	return s, nil
}

// Save пишет снимок во временный файл и атомарно подменяет основной
func (s *Storage) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}
	defer os.Remove(tmp.Name())

	links, events := s.Snapshot()
	if err := writeRecords(tmp, links, events); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	s.log.Info().Int("links", len(links)).Int("events", len(events)).Str("path", s.path).Msg("storage file saved")
	return nil
}

// Close сохраняет данные и очищает память
func (s *Storage) Close() error {
	saveErr := s.Save(context.Background())
	return errors.Join(saveErr, s.InmemoryStorage.Close())
}

func (s *Storage) load(ctx context.Context) (int, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	defer file.Close()

	var (
		links  []models.Link
		events []models.Event
		line   int
	)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		line++

		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			s.log.Warn().Err(err).Int("line", line).Msg("Failed to unmarshal record, skipping line")
			continue
		}

		switch {
		case rec.Kind == kindLink && rec.Link != nil:
			links = append(links, *rec.Link)
		case rec.Kind == kindEvent && rec.Event != nil:
			events = append(events, *rec.Event)
		default:
			s.log.Warn().Int("line", line).Str("kind", rec.Kind).Msg("Unknown record, skipping line")
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadFile, err)
	}

	if err := s.Restore(links, events); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	return len(links) + len(events), nil
}

func writeRecords(file *os.File, links []models.Link, events []models.Event) error {
	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)

	for i := range links {
		if err := enc.Encode(record{Kind: kindLink, Link: &links[i]}); err != nil {
			return err
		}
	}
	for i := range events {
		if err := enc.Encode(record{Kind: kindEvent, Event: &events[i]}); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Package chargen is the synchronous character API the HTTP layer calls: one
// method per client operation, each addressed by session key and returning
// the full serialized character.
package chargen

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/swn-chargen/internal/game/character"
	"github.com/cory-johannsen/swn-chargen/internal/game/session"
)

// DownloadFilename is the attachment name offered for downloaded characters.
const DownloadFilename = "character.json"

var (
	// ErrNoCharacterFound is returned when an operation that requires an
	// existing character is addressed to a session without one.
	ErrNoCharacterFound = session.ErrNoCharacter
	// ErrMissingParameter is returned when a required request value is empty.
	ErrMissingParameter = errors.New("missing parameter")
)

// Service implements the character operations over a session Manager.
type Service struct {
	sessions *session.Manager
	rules    character.Rules
	logger   *zap.Logger
}

// NewService creates a Service.
//
// Precondition: sessions, rules, and logger must be non-nil.
func NewService(sessions *session.Manager, rules character.Rules, logger *zap.Logger) *Service {
	return &Service{sessions: sessions, rules: rules, logger: logger}
}

func (s *Service) newCharacter() *character.Character {
	return character.New(s.rules)
}

// NewCharacter stores a fresh default character under key, replacing any
// previous one.
func (s *Service) NewCharacter(key string) character.Wire {
	c := s.newCharacter()
	s.sessions.Put(key, c)
	s.logger.Info("character created",
		zap.String("session", key),
		zap.Int("sessions", s.sessions.Len()),
	)
	return c.Serialize()
}

// GetCharacter returns the character under key, creating one on a miss.
func (s *Service) GetCharacter(key string) character.Wire {
	var out character.Wire
	_ = s.sessions.Upsert(key, s.newCharacter, func(c *character.Character) error {
		out = c.Serialize()
		return nil
	})
	s.logger.Info("character fetched", zap.String("session", key))
	return out
}

// RollAttributes rolls every attribute of the character under key, creating
// one on a miss.
func (s *Service) RollAttributes(key string) character.Wire {
	start := time.Now()
	var out character.Wire
	_ = s.sessions.Upsert(key, s.newCharacter, func(c *character.Character) error {
		c.RollAllAttributes()
		out = c.Serialize()
		return nil
	})
	s.logger.Info("attributes rolled",
		zap.String("session", key),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out
}

// ChangeAttribute boosts the attribute named by free text (case-insensitive).
//
// Postcondition: returns ErrNoCharacterFound when key has no character, or an
// error wrapping character.ErrInvalidAttributeName for an unknown name.
func (s *Service) ChangeAttribute(key, name string) (character.Wire, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: attribute", ErrMissingParameter)
	}
	var out character.Wire
	err := s.sessions.Update(key, func(c *character.Character) error {
		attr, err := character.LookupAttribute(name)
		if err != nil {
			return err
		}
		if err := c.OverrideOneAttribute(attr); err != nil {
			return err
		}
		out = c.Serialize()
		return nil
	})
	if err != nil {
		s.logger.Warn("change attribute failed",
			zap.String("session", key),
			zap.String("attribute", name),
			zap.Error(err),
		)
		return nil, err
	}
	s.logger.Info("attribute boosted",
		zap.String("session", key),
		zap.Any("attribute", out[character.FieldChangedAttribute]),
	)
	return out, nil
}

// SetDetail sets the detail named by free text to value.
//
// Postcondition: returns ErrMissingParameter when detail or value is empty,
// ErrNoCharacterFound when key has no character, or an error wrapping
// character.ErrInvalidDetailName / character.ErrInvalidDetail.
func (s *Service) SetDetail(key, detail, value string) (character.Wire, error) {
	if detail == "" || value == "" {
		return nil, fmt.Errorf("%w: detail and value are required", ErrMissingParameter)
	}
	var out character.Wire
	err := s.sessions.Update(key, func(c *character.Character) error {
		kind, err := character.LookupDetail(detail)
		if err != nil {
			return err
		}
		if err := c.SetDetail(kind, value); err != nil {
			return err
		}
		out = c.Serialize()
		return nil
	})
	if err != nil {
		s.logger.Warn("set detail failed",
			zap.String("session", key),
			zap.String("detail", detail),
			zap.Error(err),
		)
		return nil, err
	}
	s.logger.Info("detail set", zap.String("session", key), zap.String("detail", detail))
	return out, nil
}

// UploadCharacter replaces the character under key with one built from data.
//
// Postcondition: on error nothing is stored.
func (s *Service) UploadCharacter(key string, data character.Wire) (character.Wire, error) {
	c, err := character.FromWire(s.rules, data)
	if err != nil {
		s.logger.Warn("upload rejected", zap.String("session", key), zap.Error(err))
		return nil, err
	}
	s.sessions.Put(key, c)
	s.logger.Info("character uploaded", zap.String("session", key), zap.Int("fields", len(data)))
	return c.Serialize(), nil
}

// UploadJSON decodes raw as a JSON object and uploads it.
func (s *Service) UploadJSON(key string, raw []byte) (character.Wire, error) {
	data, err := character.ParseWire(raw)
	if err != nil {
		return nil, err
	}
	return s.UploadCharacter(key, data)
}

// DownloadCharacter returns the character under key as indented JSON with
// sorted keys, creating a character on a miss.
func (s *Service) DownloadCharacter(key string) ([]byte, error) {
	out, err := s.GetCharacter(key).MarshalPretty()
	if err != nil {
		return nil, fmt.Errorf("encoding character: %w", err)
	}
	s.logger.Info("character downloaded", zap.String("session", key), zap.Int("bytes", len(out)))
	return out, nil
}

package db

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/conceptpulse/conceptpulse-backend/internal/types"
)

type seedFile struct {
	Topics []struct {
		Name    string `yaml:"name"`
		Subject string `yaml:"subject"`
	} `yaml:"topics"`
}

// SeedTopics loads the topic directory from a YAML file. Existing topics
// (matched by name) are left alone, so re-running at every startup is safe.
func (s *Service) SeedTopics(path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("Topic seed file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, t := range seed.Topics {
			if t.Name == "" {
				continue
			}
			row := &types.Topic{
				ID:      uuid.New(),
				Name:    t.Name,
				Subject: t.Subject,
			}
			if err := tx.Where("name = ?", t.Name).FirstOrCreate(row).Error; err != nil {
				return fmt.Errorf("seed topic %q: %w", t.Name, err)
			}
		}
		s.log.Info("Topic seed applied", "topics", len(seed.Topics))
		return nil
	})
}

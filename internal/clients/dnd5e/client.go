package dnd5e

import (
	"log"
	"net/http"
	"time"

	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
)

// monsterAPI is the part of the dnd5e API client the bestiary uses
type monsterAPI interface {
	GetMonster(key string) (*apiEntities.Monster, error)
	ListMonstersWithFilter(input *dnd5e.ListMonstersInput) ([]*apiEntities.ReferenceItem, error)
}

type client struct {
	api monsterAPI
}

type Config struct {
	HttpClient *http.Client
	// Timeout builds an http client when HttpClient is nil
	Timeout time.Duration
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, rerrors.InvalidArgument("cfg is required")
	}

	httpClient := cfg.HttpClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	api, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: httpClient,
	})
	if err != nil {
		return nil, rerrors.Wrap(err, "failed to create dnd5e api client")
	}

	return &client{api: api}, nil
}

func (c *client) GetMonster(key string) (*Monster, error) {
	if key == "" {
		return nil, rerrors.InvalidArgument("monster key is required")
	}

	monster, err := c.api.GetMonster(key)
	if err != nil {
		return nil, rerrors.Wrapf(err, "failed to get monster %s", key)
	}
	if monster == nil {
		return nil, rerrors.NotFoundf("monster %s not found", key)
	}

	return apiToMonster(monster), nil
}

// ListMonstersByCR returns monsters within a challenge rating range. The API
// filters on exact values, so every standard rating inside the range is
// queried and duplicates are dropped.
func (c *client) ListMonstersByCR(minCR, maxCR float32) ([]*Monster, error) {
	if minCR > maxCR {
		return nil, rerrors.InvalidArgumentf("min cr %.3g is above max cr %.3g", minCR, maxCR)
	}

	monsters := make([]*Monster, 0)
	seen := make(map[string]bool)

	for _, cr := range crValuesInRange(minCR, maxCR) {
		rating := float64(cr)
		refs, err := c.api.ListMonstersWithFilter(&dnd5e.ListMonstersInput{
			ChallengeRating: &rating,
		})
		if err != nil {
			log.Printf("Failed to list monsters for CR %g: %v", cr, err)
			continue
		}

		for _, ref := range refs {
			if ref == nil || ref.Key == "" || seen[ref.Key] {
				continue
			}
			monster, err := c.api.GetMonster(ref.Key)
			if err != nil {
				log.Printf("Failed to get monster %s: %v", ref.Key, err)
				continue
			}
			if monster == nil {
				continue
			}
			seen[ref.Key] = true
			monsters = append(monsters, apiToMonster(monster))
		}
	}

	return monsters, nil
}

var challengeRatings = []float32{0, 0.125, 0.25, 0.5, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
	11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30}

func crValuesInRange(minCR, maxCR float32) []float32 {
	var result []float32
	for _, cr := range challengeRatings {
		if cr >= minCR && cr <= maxCR {
			result = append(result, cr)
		}
	}
	return result
}

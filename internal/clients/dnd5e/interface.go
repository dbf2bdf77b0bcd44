package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

// Client looks up SRD monsters for encounter rosters
type Client interface {
	GetMonster(key string) (*Monster, error)
	ListMonstersByCR(minCR, maxCR float32) ([]*Monster, error)
}

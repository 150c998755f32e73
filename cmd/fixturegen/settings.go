package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	idFieldName  = "id"
	vecFieldName = "vector"
	fieldName    = "word"
	metricType   = "L2" // euclidean distance, matches the reference k-NN
)

// MilvusSettings configures the optional Milvus load and verification.
type MilvusSettings struct {
	IP              string `env:"MILVUS_IP" envDefault:"localhost"`
	Port            string `env:"MILVUS_PORT" envDefault:"19530"`
	Username        string `env:"MILVUS_USER" envDefault:"root"`
	Password        string `env:"MILVUS_PASSWORD" envDefault:"Milvus"`
	DBName          string `env:"MILVUS_DB" envDefault:"fixtures"`
	Collection      string `env:"MILVUS_COLLECTION" envDefault:"fixtureData"`
	InsertBatchSize int    `env:"MILVUS_INSERT_BATCH" envDefault:"1000"`
	Concurrency     int    `env:"MILVUS_CONCURRENCY" envDefault:"8"`
	M               int    `env:"MILVUS_HNSW_M" envDefault:"16"`
	EfConstruction  int    `env:"MILVUS_HNSW_EF_CONSTRUCTION" envDefault:"200"`
	Ef              int    `env:"MILVUS_HNSW_EF" envDefault:"400"` // how many neighbors to evaluate during the search
}

func (s MilvusSettings) Address() string {
	return s.IP + ":" + s.Port
}

// LoadMilvusSettings reads MilvusSettings from the environment.
func LoadMilvusSettings() (MilvusSettings, error) {
	var s MilvusSettings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	if s.InsertBatchSize <= 0 {
		return s, fmt.Errorf("invalid MILVUS_INSERT_BATCH %d: must be positive", s.InsertBatchSize)
	}
	if s.Concurrency <= 0 {
		return s, fmt.Errorf("invalid MILVUS_CONCURRENCY %d: must be positive", s.Concurrency)
	}
	if s.M <= 0 {
		return s, fmt.Errorf("invalid MILVUS_HNSW_M %d: must be positive", s.M)
	}
	if s.EfConstruction <= 0 {
		return s, fmt.Errorf("invalid MILVUS_HNSW_EF_CONSTRUCTION %d: must be positive", s.EfConstruction)
	}
	if s.Ef <= 0 {
		return s, fmt.Errorf("invalid MILVUS_HNSW_EF %d: must be positive", s.Ef)
	}
	return s, nil
}

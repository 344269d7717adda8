package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	TokenName       string
	TokenSymbol     string
	TokenDecimals   uint8
	ChainID         uint64
	ContractAddress string
	OwnerAddress    string
	InitialHolder   string
	InitialSupply   string
	MaxSupply       string
	DailyMintLimit  string
}

// Supply defaults mirror the canonical deployment: 1,000,000 tokens minted
// to the initial holder, an 18,000,000 ceiling and a 1,000,000/day mint
// quota, all at 18 decimals.
const (
	defaultInitialSupply  = "1000000000000000000000000"
	defaultMaxSupply      = "18000000000000000000000000"
	defaultDailyMintLimit = "1000000000000000000000000"
)

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "aurum"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	chainID, err := envUint("CHAIN_ID", 1)
	if err != nil {
		return Config{}, err
	}
	decimals, err := envUint("TOKEN_DECIMALS", 18)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		TokenName:       envString("TOKEN_NAME", "Aurum"),
		TokenSymbol:     envString("TOKEN_SYMBOL", "AUR"),
		TokenDecimals:   uint8(decimals),
		ChainID:         chainID,
		ContractAddress: os.Getenv("CONTRACT_ADDRESS"),
		OwnerAddress:    os.Getenv("OWNER_ADDRESS"),
		InitialHolder:   os.Getenv("INITIAL_HOLDER"),
		InitialSupply:   envString("INITIAL_SUPPLY", defaultInitialSupply),
		MaxSupply:       envString("MAX_SUPPLY", defaultMaxSupply),
		DailyMintLimit:  envString("DAILY_MINT_LIMIT", defaultDailyMintLimit),
	}, nil
}

func envString(name string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envUint(name string, fallback uint64) (uint64, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return value, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
)

var (
	HOOK_PROGRAM_ID   = solana.MustPublicKeyFromBase58("DrWbQtYJGtsoRwzKqAbHKHKsCJJfpysudF39GBVFSxub")
	CPSWAP_PROGRAM_ID = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")
	COMPUTE_PROGRAM   = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")
	LAMPORTS_PER_SOL  = 1000000000
)

const (
	DELEGATE_SEED            = "delegate"
	EXTRA_ACCOUNT_METAS_SEED = "extra-account-metas"
	POOL_AUTHORITY_SEED      = "vault_and_lp_mint_auth_seed"
	POOL_LP_MINT_SEED        = "pool_lp_mint"
)

// Programs carries every well-known address and seed literal the hook
// depends on, so tests and local networks can swap them.
type Programs struct {
	Hook                 solana.PublicKey
	CpSwap               solana.PublicKey
	Token                solana.PublicKey
	Token2022            solana.PublicKey
	System               solana.PublicKey
	DelegateSeed         string
	ExtraAccountMetaSeed string
	PoolAuthoritySeed    string
	PoolLpMintSeed       string
}

func DefaultPrograms() Programs {
	return Programs{
		Hook:                 HOOK_PROGRAM_ID,
		CpSwap:               CPSWAP_PROGRAM_ID,
		Token:                solana.TokenProgramID,
		Token2022:            solana.Token2022ProgramID,
		System:               solana.SystemProgramID,
		DelegateSeed:         DELEGATE_SEED,
		ExtraAccountMetaSeed: EXTRA_ACCOUNT_METAS_SEED,
		PoolAuthoritySeed:    POOL_AUTHORITY_SEED,
		PoolLpMintSeed:       POOL_LP_MINT_SEED,
	}
}

var (
	Program        = DefaultPrograms()
	Payer          *solana.Wallet
	RpcHttpUrl     string
	RpcWsUrl       string
	RedisAddr      string
	RedisPassword  string
	MySqlDsn       string
	MySqlDbName    string
	HttpPort       = 5000
	LogLevel       = "info"
	JournalWorkers = 4
)

func InitEnv() error {
	// A missing .env is fine when the environment is already populated.
	_ = godotenv.Load()

	if key := os.Getenv("PAYER_PRIVATE_KEY"); key != "" {
		pay, err := solana.WalletFromPrivateKeyBase58(key)
		if err != nil {
			return err
		}
		Payer = pay
	}

	RpcHttpUrl = os.Getenv("RPC_HTTP_URL")
	RpcWsUrl = os.Getenv("RPC_WS_URL")
	RedisAddr = os.Getenv("REDIS_ADDR")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	MySqlDsn = os.Getenv("MYSQL_DSN")
	MySqlDbName = os.Getenv("MYSQL_DB_NAME")

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		LogLevel = level
	}

	var err error
	if HttpPort, err = intFromEnv("HTTP_PORT", HttpPort); err != nil {
		return err
	}
	if JournalWorkers, err = intFromEnv("JOURNAL_WORKERS", JournalWorkers); err != nil {
		return err
	}

	return loadPrograms(&Program)
}

func loadPrograms(p *Programs) error {
	ids := []struct {
		env string
		dst *solana.PublicKey
	}{
		{"HOOK_PROGRAM_ID", &p.Hook},
		{"CPSWAP_PROGRAM_ID", &p.CpSwap},
		{"TOKEN_PROGRAM_ID", &p.Token},
		{"TOKEN_2022_PROGRAM_ID", &p.Token2022},
	}

	for _, id := range ids {
		v := os.Getenv(id.env)
		if v == "" {
			continue
		}
		key, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			return fmt.Errorf("%s: %w", id.env, err)
		}
		*id.dst = key
	}

	return nil
}

func intFromEnv(name string, fallback int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

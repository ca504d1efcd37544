package coder

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var ErrInvalidAccountData = errors.New("invalid account data")

// PoolState is the constant-product pool account, without its 8 byte
// account discriminator.
type PoolState struct {
	AmmConfig          solana.PublicKey
	PoolCreator        solana.PublicKey
	Token0Vault        solana.PublicKey
	Token1Vault        solana.PublicKey
	LpMint             solana.PublicKey
	Token0Mint         solana.PublicKey
	Token1Mint         solana.PublicKey
	Token0Program      solana.PublicKey
	Token1Program      solana.PublicKey
	ObservationKey     solana.PublicKey
	AuthBump           uint8
	Status             uint8
	LpMintDecimals     uint8
	Mint0Decimals      uint8
	Mint1Decimals      uint8
	LpSupply           uint64
	ProtocolFeesToken0 uint64
	ProtocolFeesToken1 uint64
	FundFeesToken0     uint64
	FundFeesToken1     uint64
	OpenTime           uint64
	RecentEpoch        uint64
	Padding            [31]uint64
}

type AmmConfig struct {
	Bump              uint8
	DisableCreatePool bool
	Index             uint16
	TradeFeeRate      uint64
	ProtocolFeeRate   uint64
	FundFeeRate       uint64
	CreatePoolFee     uint64
	ProtocolOwner     solana.PublicKey
	FundOwner         solana.PublicKey
	Padding           [16]uint64
}

type CpSwapStateCoder struct{}

func NewCpSwapStateCoder() *CpSwapStateCoder {
	return &CpSwapStateCoder{}
}

func (coder *CpSwapStateCoder) DecodePoolState(data []byte) (PoolState, error) {
	var state PoolState
	err := decodeAccount(data, PoolStateDiscriminator, &state)
	return state, err
}

func (coder *CpSwapStateCoder) DecodeAmmConfig(data []byte) (AmmConfig, error) {
	var state AmmConfig
	err := decodeAccount(data, AmmConfigDiscriminator, &state)
	return state, err
}

func EncodePoolState(state PoolState) ([]byte, error) {
	return encodeAccount(PoolStateDiscriminator, state)
}

func EncodeAmmConfig(state AmmConfig) ([]byte, error) {
	return encodeAccount(AmmConfigDiscriminator, state)
}

func decodeAccount(data []byte, discriminator bin.TypeID, out interface{}) error {
	dec := bin.NewBorshDecoder(data)
	id, err := dec.ReadTypeID()
	if err != nil {
		return ErrInvalidAccountData
	}
	if id != discriminator {
		return fmt.Errorf("%w: unexpected discriminator %x", ErrInvalidAccountData, id[:])
	}
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAccountData, err)
	}
	return nil
}

func encodeAccount(discriminator bin.TypeID, state interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(discriminator[:])
	if err := bin.NewBorshEncoder(buf).Encode(state); err != nil {
		return nil, fmt.Errorf("unable to encode account: %w", err)
	}
	return buf.Bytes(), nil
}

// Package meta encodes the extra account metadata list a transfer hook
// publishes for each mint, in the layout the token-2022 program reads.
package meta

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	DiscriminatorPubkey uint8 = 0
	// DiscriminatorSeeds addresses are derived under the hook program id.
	DiscriminatorSeeds uint8 = 1

	seedKindLiteral uint8 = 1
)

var (
	ErrSeedConfigTooLong = errors.New("seed config does not fit 32 bytes")
	ErrUnsupportedSeed   = errors.New("unsupported seed kind")
	ErrUnknownMetaKind   = errors.New("unknown extra account meta discriminator")
)

type ExtraAccountMeta struct {
	Discriminator uint8
	AddressConfig [32]byte
	IsSigner      bool
	IsWritable    bool
}

func NewWithPubkey(key solana.PublicKey, isSigner bool, isWritable bool) ExtraAccountMeta {
	return ExtraAccountMeta{
		Discriminator: DiscriminatorPubkey,
		AddressConfig: key,
		IsSigner:      isSigner,
		IsWritable:    isWritable,
	}
}

// NewWithSeeds packs literal seeds as kind, length, bytes.
func NewWithSeeds(seeds [][]byte, isSigner bool, isWritable bool) (ExtraAccountMeta, error) {
	m := ExtraAccountMeta{
		Discriminator: DiscriminatorSeeds,
		IsSigner:      isSigner,
		IsWritable:    isWritable,
	}

	offset := 0
	for _, seed := range seeds {
		if len(seed) > solana.MaxSeedLength || offset+2+len(seed) > len(m.AddressConfig) {
			return ExtraAccountMeta{}, ErrSeedConfigTooLong
		}
		m.AddressConfig[offset] = seedKindLiteral
		m.AddressConfig[offset+1] = uint8(len(seed))
		copy(m.AddressConfig[offset+2:], seed)
		offset += 2 + len(seed)
	}

	return m, nil
}

// Seeds unpacks a seed config. Only literal seeds are understood.
func (m ExtraAccountMeta) Seeds() ([][]byte, error) {
	if m.Discriminator != DiscriminatorSeeds {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetaKind, m.Discriminator)
	}

	var seeds [][]byte
	config := m.AddressConfig[:]
	for len(config) > 0 && config[0] != 0 {
		if config[0] != seedKindLiteral {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedSeed, config[0])
		}
		if len(config) < 2 || int(config[1])+2 > len(config) {
			return nil, ErrSeedConfigTooLong
		}
		n := int(config[1])
		seeds = append(seeds, append([]byte{}, config[2:2+n]...))
		config = config[2+n:]
	}

	return seeds, nil
}

func (m ExtraAccountMeta) Resolve(programId solana.PublicKey) (*solana.AccountMeta, error) {
	var key solana.PublicKey

	switch m.Discriminator {
	case DiscriminatorPubkey:
		key = m.AddressConfig
	case DiscriminatorSeeds:
		seeds, err := m.Seeds()
		if err != nil {
			return nil, err
		}
		key, _, err = solana.FindProgramAddress(seeds, programId)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetaKind, m.Discriminator)
	}

	return &solana.AccountMeta{
		PublicKey:  key,
		IsSigner:   m.IsSigner,
		IsWritable: m.IsWritable,
	}, nil
}

func (m ExtraAccountMeta) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = encoder.WriteUint8(m.Discriminator); err != nil {
		return err
	}
	if err = encoder.WriteBytes(m.AddressConfig[:], false); err != nil {
		return err
	}
	if err = encoder.WriteBool(m.IsSigner); err != nil {
		return err
	}
	return encoder.WriteBool(m.IsWritable)
}

func (m *ExtraAccountMeta) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if m.Discriminator, err = decoder.ReadUint8(); err != nil {
		return err
	}
	config, err := decoder.ReadNBytes(len(m.AddressConfig))
	if err != nil {
		return err
	}
	copy(m.AddressConfig[:], config)
	if m.IsSigner, err = decoder.ReadBool(); err != nil {
		return err
	}
	m.IsWritable, err = decoder.ReadBool()
	return err
}


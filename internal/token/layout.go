package token

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	spltoken "github.com/gagliardetto/solana-go/programs/token"
)

const (
	MintSize    = spltoken.MINT_SIZE
	AccountSize = 165

	AccountTypeMint    uint8 = 1
	AccountTypeAccount uint8 = 2

	ExtensionTransferHook        uint16 = 14
	ExtensionTransferHookAccount uint16 = 15

	transferHookLength        = 64
	transferHookAccountLength = 1
)

// TransferHook is the token-2022 mint extension naming the program the
// token program calls on every transfer.
type TransferHook struct {
	Authority solana.PublicKey
	ProgramID solana.PublicKey
}

type Mint struct {
	spltoken.Mint
	TransferHook *TransferHook
}

func DecodeMint(data []byte) (*Mint, error) {
	if len(data) < MintSize {
		return nil, fmt.Errorf("%w: mint of %d bytes", ErrInvalidAccountData, len(data))
	}

	m := &Mint{}
	if err := m.Mint.UnmarshalWithDecoder(bin.NewBinDecoder(data[:MintSize])); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccountData, err)
	}
	if !m.IsInitialized {
		return nil, ErrUninitializedState
	}

	extensions, err := decodeExtensions(data, AccountTypeMint)
	if err != nil {
		return nil, err
	}
	if value, ok := extensions[ExtensionTransferHook]; ok {
		if len(value) != transferHookLength {
			return nil, fmt.Errorf("%w: transfer hook extension of %d bytes", ErrInvalidAccountData, len(value))
		}
		m.TransferHook = &TransferHook{
			Authority: solana.PublicKeyFromBytes(value[:32]),
			ProgramID: solana.PublicKeyFromBytes(value[32:]),
		}
	}

	return m, nil
}

// EncodeMint writes the base layout, and the token-2022 extension area when
// the mint carries a transfer hook.
func EncodeMint(m *Mint) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := m.Mint.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, err
	}
	if m.TransferHook == nil {
		return buf.Bytes(), nil
	}

	data := make([]byte, AccountSize+1, AccountSize+1+4+transferHookLength)
	copy(data, buf.Bytes())
	data[AccountSize] = AccountTypeMint

	data = binary.LittleEndian.AppendUint16(data, ExtensionTransferHook)
	data = binary.LittleEndian.AppendUint16(data, transferHookLength)
	data = append(data, m.TransferHook.Authority[:]...)
	data = append(data, m.TransferHook.ProgramID[:]...)
	return data, nil
}

func DecodeAccount(data []byte) (*spltoken.Account, error) {
	if len(data) < AccountSize {
		return nil, fmt.Errorf("%w: account of %d bytes", ErrInvalidAccountData, len(data))
	}

	acc := &spltoken.Account{}
	if err := acc.UnmarshalWithDecoder(bin.NewBinDecoder(data[:AccountSize])); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccountData, err)
	}
	if acc.State == spltoken.Uninitialized {
		return nil, ErrUninitializedState
	}
	if _, err := decodeExtensions(data, AccountTypeAccount); err != nil {
		return nil, err
	}

	return acc, nil
}

// EncodeAccount returns the 165 byte base layout; extended adds the
// token-2022 account type marker and a cleared transfer hook account
// extension.
func EncodeAccount(acc *spltoken.Account, extended bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := acc.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, err
	}
	if !extended {
		return buf.Bytes(), nil
	}

	data := append(buf.Bytes(), AccountTypeAccount)
	data = binary.LittleEndian.AppendUint16(data, ExtensionTransferHookAccount)
	data = binary.LittleEndian.AppendUint16(data, transferHookAccountLength)
	return append(data, 0), nil
}

// Transferring reports whether the token program is in the middle of a
// transfer out of the account.
func Transferring(data []byte) (bool, error) {
	value, err := transferHookAccount(data)
	if err != nil {
		return false, err
	}
	return value[0] == 1, nil
}

// SetTransferring flips the flag in place.
func SetTransferring(data []byte, transferring bool) error {
	value, err := transferHookAccount(data)
	if err != nil {
		return err
	}
	value[0] = 0
	if transferring {
		value[0] = 1
	}
	return nil
}

// transferHookAccount returns the extension value as a view into data.
func transferHookAccount(data []byte) ([]byte, error) {
	if len(data) <= AccountSize || data[AccountSize] != AccountTypeAccount {
		return nil, fmt.Errorf("%w: no transfer hook account extension", ErrInvalidAccountData)
	}

	offset := AccountSize + 1
	for offset+4 <= len(data) {
		kind := binary.LittleEndian.Uint16(data[offset:])
		length := int(binary.LittleEndian.Uint16(data[offset+2:]))
		offset += 4
		if kind == 0 || offset+length > len(data) {
			break
		}
		if kind == ExtensionTransferHookAccount {
			if length != transferHookAccountLength {
				return nil, fmt.Errorf("%w: transfer hook account extension of %d bytes", ErrInvalidAccountData, length)
			}
			return data[offset : offset+length], nil
		}
		offset += length
	}
	return nil, fmt.Errorf("%w: no transfer hook account extension", ErrInvalidAccountData)
}

// decodeExtensions reads the TLV area that follows the account type byte.
func decodeExtensions(data []byte, accountType uint8) (map[uint16][]byte, error) {
	extensions := make(map[uint16][]byte)
	if len(data) <= AccountSize {
		return extensions, nil
	}
	if data[AccountSize] != accountType {
		return nil, fmt.Errorf("%w: account type %d", ErrInvalidAccountData, data[AccountSize])
	}

	dec := bin.NewBinDecoder(data[AccountSize+1:])
	for dec.Remaining() >= 4 {
		kind, err := dec.ReadUint16(binary.LittleEndian)
		if err != nil {
			return nil, err
		}
		if kind == 0 {
			break
		}
		length, err := dec.ReadUint16(binary.LittleEndian)
		if err != nil {
			return nil, err
		}
		value, err := dec.ReadNBytes(int(length))
		if err != nil {
			return nil, fmt.Errorf("%w: extension %d: %v", ErrInvalidAccountData, kind, err)
		}
		extensions[kind] = value
	}

	return extensions, nil
}

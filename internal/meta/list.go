package meta

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
)

const (
	RecordSize = 35
	// discriminator, value length, record count
	HeaderSize = 8 + 4 + 4
)

var ErrInvalidListData = errors.New("invalid extra account meta list data")

// List is stored as a single TLV entry keyed by the Execute discriminator.
type List []ExtraAccountMeta

func SizeOf(n int) int {
	return HeaderSize + RecordSize*n
}

func (l List) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(SizeOf(len(l)))

	encoder := bin.NewBinEncoder(buf)
	if err := encoder.WriteBytes(coder.ExecuteDiscriminator[:], false); err != nil {
		return nil, err
	}
	if err := encoder.WriteUint32(uint32(4+RecordSize*len(l)), binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := encoder.WriteUint32(uint32(len(l)), binary.LittleEndian); err != nil {
		return nil, err
	}
	for i := range l {
		if err := l[i].MarshalWithEncoder(encoder); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return buf.Bytes(), nil
}

func Decode(data []byte) (List, error) {
	decoder := bin.NewBinDecoder(data)

	discriminator, err := decoder.ReadTypeID()
	if err != nil {
		return nil, ErrInvalidListData
	}
	if discriminator != coder.ExecuteDiscriminator {
		return nil, fmt.Errorf("%w: discriminator %x", ErrInvalidListData, discriminator[:])
	}

	length, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil, ErrInvalidListData
	}
	count, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil, ErrInvalidListData
	}
	if uint64(length) != 4+uint64(count)*RecordSize || decoder.Remaining() < int(count)*RecordSize {
		return nil, fmt.Errorf("%w: length %d count %d", ErrInvalidListData, length, count)
	}

	list := make(List, count)
	for i := range list {
		if err := list[i].UnmarshalWithDecoder(decoder); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidListData, i, err)
		}
	}

	return list, nil
}

// Resolve turns every record into the account meta the runtime appends
// after the fixed Execute accounts.
func (l List) Resolve(programId solana.PublicKey) ([]*solana.AccountMeta, error) {
	metas := make([]*solana.AccountMeta, 0, len(l))
	for i, record := range l {
		resolved, err := record.Resolve(programId)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		metas = append(metas, resolved)
	}
	return metas, nil
}

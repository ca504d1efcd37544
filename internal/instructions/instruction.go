package instructions

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// baseInstruction carries what every builder here shares: the target
// program, the discriminator and the account list.
type baseInstruction struct {
	bin.BaseVariant
	programId               solana.PublicKey
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func (instruction *baseInstruction) ProgramID() solana.PublicKey {
	return instruction.programId
}

func (instruction *baseInstruction) Accounts() (out []*solana.AccountMeta) {
	return instruction.AccountMetaSlice
}

func encode(instruction bin.BinaryMarshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := instruction.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("unable to encode instruction: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTypeID(encoder *bin.Encoder, id bin.TypeID) error {
	return encoder.WriteBytes(id[:], false)
}

package database

// Values for the canonical genesis block every node starts with.
const (
	genesisHash      = "816534932c2b7154836da6afc367695e6337db8a921823784c14378abed4f7d7"
	genesisTimestamp = 1465154705
	genesisData      = "AFM Chain genesis block"
)

// Genesis returns the hardcoded first block of every chain. It has no
// predecessor and its hash is not derived from its fields.
func Genesis() Block {
	return Block{
		Index:     0,
		Hash:      genesisHash,
		Timestamp: genesisTimestamp,
		Data:      genesisData,
	}
}

package contract

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed artifacts/*.json
var artifacts embed.FS

// Embedded returns the built-in artifact for a contract profile ("atm", "lottery").
func Embedded(name string) ([]byte, error) {
	data, err := artifacts.ReadFile("artifacts/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("no embedded artifact for %q: %w", name, err)
	}
	return data, nil
}

// LoadDescriptor reads the interface descriptor from path, or the embedded artifact when path is empty.
func LoadDescriptor(name, path string) (abi.ABI, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return abi.ABI{}, fmt.Errorf("reading descriptor %s: %w", path, err)
		}
	} else {
		data, err = Embedded(name)
		if err != nil {
			return abi.ABI{}, err
		}
	}
	return ParseDescriptor(data)
}

// ParseDescriptor accepts a Hardhat/Truffle artifact ({"abi": [...]}) or a bare ABI array.
func ParseDescriptor(data []byte) (abi.ABI, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return abi.ABI{}, fmt.Errorf("empty descriptor")
	}

	if trimmed[0] == '{' {
		var artifact struct {
			ABI json.RawMessage `json:"abi"`
		}
		if err := json.Unmarshal(trimmed, &artifact); err != nil {
			return abi.ABI{}, fmt.Errorf("decoding artifact: %w", err)
		}
		if len(artifact.ABI) == 0 {
			return abi.ABI{}, fmt.Errorf("artifact has no abi field")
		}
		trimmed = artifact.ABI
	}

	parsed, err := abi.JSON(bytes.NewReader(trimmed))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parsing abi: %w", err)
	}
	return parsed, nil
}

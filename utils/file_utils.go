package utils

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"log"
	"os"

	"github.com/Luismorlan/fileshare_in_go/model"
)

// ParseChainFile loads a persisted chain, or starts a fresh one when the
// file does not exist yet. The loaded chain is revalidated before use so a
// tampered file is rejected loudly instead of silently trusted.
func ParseChainFile(fPath string, difficulty int) (*model.Blockchain, error) {
	if fPath == "" {
		return nil, errors.New("file path is missing")
	}
	if _, err := os.Stat(fPath); os.IsNotExist(err) {
		log.Println("No persisted chain found, starting from genesis")
		return NewBlockchain(), nil
	}
	bc, err := ReadChainFromFPath(fPath)
	if err != nil {
		log.Printf("Failed to read the chain from path %s with error %s", fPath, err)
		return nil, err
	}
	if err := ValidateChain(bc, difficulty); err != nil {
		return nil, err
	}
	return bc, nil
}

// SaveChainToFile persists the full ordered block list, enough to re-run
// validation and authorization after reload.
func SaveChainToFile(bc *model.Blockchain, fPath string) error {
	data, err := json.MarshalIndent(bc, "", "  ")
	if err != nil {
		return err
	}
	err = ioutil.WriteFile(fPath, data, 0644)
	if err != nil {
		log.Println("failed to save chain in", fPath, err)
		return err
	}
	return nil
}

// ReadChainFromFPath reads a chain persisted by SaveChainToFile.
func ReadChainFromFPath(fPath string) (*model.Blockchain, error) {
	fileContent, err := ioutil.ReadFile(fPath)
	if err != nil {
		return nil, err
	}
	if len(fileContent) == 0 {
		log.Println("File is empty, please check filepath.")
		return nil, errors.New("chain file is empty")
	}
	bc := &model.Blockchain{}
	if err := json.Unmarshal(fileContent, bc); err != nil {
		return nil, err
	}
	return bc, nil
}

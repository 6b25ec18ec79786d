package main

import (
	"fmt"
	"os"

	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/filebank-network/filebank/chain/types"
)

func main() {
	err := gen.WriteTupleEncodersToFile("./chain/types/cbor_gen.go", "types",
		types.Owner{},
		types.FileRecord{},
		types.QuotaRecord{},
		types.FillerRecord{},
		types.InvalidFileList{},
		types.HeldFile{},
		types.HeldFileList{},
		types.AddressList{},
		types.LedgerParams{},
		types.MinerInfo{},
	)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

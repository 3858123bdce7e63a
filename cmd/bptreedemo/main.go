// Command bptreedemo builds an in-memory tree from config.Default (or a
// -config file), inserts a run of sequential int64 keys mapped to heap RIDs,
// and walks the result back out through Begin to show the range scan
// working end to end.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lattice-db/bptree"
	"github.com/lattice-db/bptree/config"
	"github.com/lattice-db/bptree/keycmp"
	"github.com/lattice-db/bptree/obslog"
	"github.com/lattice-db/bptree/rid"
	"github.com/lattice-db/bptree/storage/membuf"
)

var (
	flagConfig = flag.String("config", "", "path to a YAML config file (default: built-in defaults)")
	flagCount  = flag.Int("n", 1000, "number of sequential int64 keys to insert")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *flagConfig != "" {
		loaded, err := config.Load(*flagConfig)
		if err != nil {
			obslog.Logger.Fatal().Err(err).Msg("load config")
		}
		cfg = loaded
	}
	if cfg.ValueSize != rid.Size {
		obslog.Logger.Warn().Int("configured", cfg.ValueSize).Int("rid_size", rid.Size).
			Msg("value_size overridden to match rid.RID's encoded width")
		cfg.ValueSize = rid.Size
	}

	pool := membuf.New()
	headerGuard, err := pool.NewPage()
	if err != nil {
		obslog.Logger.Fatal().Err(err).Msg("allocate header page")
	}
	headerPageID := headerGuard.PageID()
	headerGuard.Release()

	cmp := keycmp.Int64{}
	tree, err := bptree.New(cfg.TreeName, headerPageID, pool, cmp, cfg.ValueSize, cfg.LeafMaxSize, cfg.InternalMaxSize)
	if err != nil {
		obslog.Logger.Fatal().Err(err).Msg("construct tree")
	}

	for i := 0; i < *flagCount; i++ {
		key := keycmp.EncodeInt64(int64(i))
		value := rid.RID{PageID: uint32(i / 64), Slot: uint16(i % 64)}.Encode()
		if _, err := tree.Insert(key, value); err != nil {
			obslog.Logger.Fatal().Err(err).Int("i", i).Msg("insert")
		}
	}

	it, err := tree.Begin()
	if err != nil {
		obslog.Logger.Fatal().Err(err).Msg("begin scan")
	}
	defer it.Close()

	count := 0
	var last rid.RID
	for it.Next() {
		count++
		last = rid.DecodeRID(it.Value())
	}
	if err := it.Error(); err != nil {
		obslog.Logger.Fatal().Err(err).Msg("scan")
	}

	root, err := tree.RootPageID()
	if err != nil {
		obslog.Logger.Fatal().Err(err).Msg("root page id")
	}

	fmt.Fprintf(os.Stdout, "inserted %d keys, scanned %d entries, root page %d, last rid %+v\n",
		*flagCount, count, int64(root), last)
}

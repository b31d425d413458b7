package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"routegraph/pkg/datastructure"
	"routegraph/pkg/kv"
	"routegraph/pkg/osmparser"
	"routegraph/pkg/routegraph"
)

var (
	mapFile      = flag.String("f", "", "openstreetmap .osm.pbf file to import; when empty, preprocessing is skipped and existing ways.dat/rawrels.dat/way.idx are used")
	destDir      = flag.String("dest", ".", "destination directory for generated files")
	blockSize    = flag.Int("blocksize", 5000, "number of junctions per route node build block")
	mmapWays     = flag.Bool("mmapways", false, "memory-map reads of ways.dat")
	mmapWayIndex = flag.Bool("mmapindex", false, "memory-map reads of way.idx")
	indexCache   = flag.Int("indexcache", 100_000, "way index lookup cache size in entries")
)

func main() {
	flag.Parse()

	start := time.Now()
	typeConfig := datastructure.DefaultTypeConfig()

	if *mapFile != "" {
		nodeStoreDir := filepath.Join(*destDir, "nodes.tmp")

		store, err := kv.NewNodeStore(nodeStoreDir)
		if err != nil {
			log.Fatal(err)
		}

		preprocessor := osmparser.NewPreprocessor(typeConfig, store)
		if err := preprocessor.Run(*mapFile, *destDir); err != nil {
			store.Close()
			log.Fatal(err)
		}
		if err := store.Close(); err != nil {
			log.Fatal(err)
		}
		os.RemoveAll(nodeStoreDir)
	}

	parameter := routegraph.ImportParameter{
		DestinationDirectory: *destDir,
		WayDataMemoryMapped:  *mmapWays,
		WayIndexCacheSize:    *indexCache,
		WayIndexMemoryMapped: *mmapWayIndex,
		RouteNodeBlockSize:   *blockSize,
	}

	builder := routegraph.NewBuilder(parameter, routegraph.NewLogProgress(), typeConfig)
	if err := builder.Run(); err != nil {
		log.Fatal(err)
	}

	log.Printf("import finished in %s", time.Since(start))
}

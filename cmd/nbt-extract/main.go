// Command nbt-extract reads a named value out of an NBT file without
// walking more of the tree than necessary.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/voxelmesh/chunkstore/pkg/nbt"
)

func main() {
	file := flag.String("file", "", "NBT file to read (plain, gzip or zlib)")
	path := flag.String("path", "", "Dotted tag path, e.g. Level.xPos")
	useMmap := flag.Bool("mmap", false, "Memory-map the file instead of streaming it")
	flag.Parse()

	if *file == "" || *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	var (
		src io.ReadCloser
		err error
	)
	if *useMmap {
		src, err = nbt.OpenMmap(*file)
	} else {
		src, err = nbt.Open(*file)
	}
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *file, err)
	}

	tag, ok := nbt.ExtractPath(src, *path)
	if !ok {
		fmt.Printf("%s: not found\n", *path)
		os.Exit(1)
	}

	printTag(tag)
}

func printTag(tag *nbt.Tag) {
	switch tag.Type {
	case nbt.TypeCompound:
		fmt.Printf("%s (%s, %d children)\n", tag.Name, tag.Type, len(tag.Children))
		for _, child := range tag.Children {
			fmt.Printf("  %s: %s\n", child.Name, child.Type)
		}
	case nbt.TypeList:
		fmt.Printf("%s (%s of %s, %d elements)\n", tag.Name, tag.Type, tag.ElemType, len(tag.Children))
	case nbt.TypeByteArray:
		fmt.Printf("%s (%s, %d bytes)\n", tag.Name, tag.Type, len(tag.Value.([]byte)))
	case nbt.TypeIntArray:
		fmt.Printf("%s (%s, %d values)\n", tag.Name, tag.Type, len(tag.Value.([]int32)))
	case nbt.TypeLongArray:
		fmt.Printf("%s (%s, %d values)\n", tag.Name, tag.Type, len(tag.Value.([]int64)))
	default:
		fmt.Printf("%s (%s) = %v\n", tag.Name, tag.Type, tag.Value)
	}
}

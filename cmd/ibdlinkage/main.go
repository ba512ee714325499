// ibdlinkage finds the chromosomal regions whose identity-by-descent sharing
// with a proband differs between affected (case) and unaffected (control)
// relatives.
//
// Each directory holds one comparison file per relative, listing the segments
// the relative shares with the proband. The significant regions are printed
// to stdout as a tab-separated table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/carbocation/ibdlinkage/compileinfo"
	"github.com/sirupsen/logrus"
)

func main() {
	opts, err := ParseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		logrus.Fatalln(err)
	}

	info := compileinfo.Get()
	if opts.Version {
		fmt.Println(info)
		return
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithFields(info.Fields()).Debugln("Starting")

	if err := run(context.Background(), opts, log, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}); err != nil {
		log.Fatalln(err)
	}
}

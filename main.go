package main

import (
	"context"

	"go.uber.org/zap"

	"pngbytes/pkg/batch"
)

func main() {
	logger, _ := zap.NewDevelopment()

	conv, err := batch.New(batch.DefaultSource, batch.DefaultDestination, logger)
	if err != nil {
		panic(err)
	}

	if _, err := conv.Run(context.Background()); err != nil {
		panic(err)
	}
}

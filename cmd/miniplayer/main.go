package main

import (
	"log"
	"os"

	"github.com/edward-ap/miniplayer/internal/config"
	"github.com/edward-ap/miniplayer/internal/playback/vlcengine"
	"github.com/edward-ap/miniplayer/internal/playerapp"
)

func main() {
	args := parseArgs(os.Args[1:])

	env, err := config.ParseEnv()
	if err != nil {
		log.Println(err)
	}
	vlcengine.SetTraceLoggingEnabled(args.traceLog || bool(env.TraceLog))

	app := playerapp.NewApp(playerapp.Options{InitialPath: args.path, Env: env})
	app.Run()
}

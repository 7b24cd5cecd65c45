package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"rotten-soup/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info", "dump":
		if len(os.Args) < 3 {
			fmt.Printf("Usage: replayutil %s <file.rsrp>\n", os.Args[1])
			return
		}
		rec, err := (&storage.ReplayService{}).Load(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid replay: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("seed:     %d\n", rec.Seed)
		fmt.Printf("level:    %s\n", rec.StartLevel)
		fmt.Printf("recorded: %s\n", time.Unix(rec.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("commands: %d\n", len(rec.Commands))
		if os.Args[1] == "dump" {
			for _, cmd := range rec.Commands {
				fmt.Printf("%5d %-9s %s\n", cmd.Seq, cmd.Action, cmd.Payload)
			}
		}
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replayutil format <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).Format(time.RFC3339))
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Replay Utility - просмотр записанных партий
Commands:
  info <file.rsrp>       - зерно, стартовый уровень и число команд
  dump <file.rsrp>       - то же плюс список команд
  format <timestamp>     - преобразовать Unix время из имени файла в читаемый формат`)
}

// Command validate runs the bulk-import reconciliation over a spreadsheet
// without touching the network or the database. Useful for checking a file
// before handing it to an admin.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"zencat/adapters/excel"
	"zencat/domain/bulkimport"
	"zencat/internal/logging"
	"zencat/models"
)

func main() {
	var (
		path    = flag.String("file", "", "spreadsheet to validate (.xlsx or .csv)")
		entity  = flag.String("entity", bulkimport.EntitySessions, "entity module: sessions or communities")
		tz      = flag.String("tz", "America/Lima", "reference timezone for schedules")
		ceiling = flag.Float64("capacity", 0, "venue capacity ceiling (0 = unbounded)")
	)
	flag.Parse()

	log := logging.Setup()
	if *path == "" {
		log.Fatal().Msg("-file is required")
	}
	spec, ok := models.ColumnsFor(*entity)
	if !ok {
		log.Fatal().Str("entity", *entity).Msg("unknown entity module")
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		log.Fatal().Err(err).Str("tz", *tz).Msg("unknown timezone")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open file")
	}
	defer f.Close()

	table, err := excel.NewReader().Parse(f, *path)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse file")
	}

	result, err := bulkimport.Run(table.Headers, table.Rows, spec, bulkimport.Options{
		Entity:              *entity,
		ValidateUniqueNames: *entity == bulkimport.EntityCommunities,
		CapacityCeiling:     *ceiling,
		InPerson:            *ceiling > 0,
		Location:            loc,
		Trace:               log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("validation failed to run")
	}

	if result.Accepted() {
		fmt.Printf("OK: %d rows ready to import\n", len(result.Rows))
		return
	}
	fmt.Println(result.Diagnostics.Join())
	os.Exit(1)
}

package main

import (
	"context"

	"github.com/AzorianSolutions/grandstart/internal/infrastructure/database"
	"github.com/AzorianSolutions/grandstart/internal/infrastructure/influxdb"
	"github.com/AzorianSolutions/grandstart/internal/infrastructure/mqtt"
	"github.com/AzorianSolutions/grandstart/internal/inventory"
	"github.com/AzorianSolutions/grandstart/internal/report"
	"github.com/AzorianSolutions/grandstart/migrations"
)

// openSinks connects the enabled reporting backends. A backend that cannot
// be reached is logged and left out so the configurations are still
// generated. The returned cleanup closes whatever was opened.
func openSinks(ctx context.Context, a *app) (report.Sink, func()) {
	cfg := a.cfg
	log := a.log
	sinks := []report.Sink{report.NewLogSink(log)}
	var closers []func()

	if cfg.Database.Enabled {
		db, err := openInventory(ctx, a)
		if err != nil {
			log.Warn("inventory database unavailable", "path", cfg.Database.Path, "error", err)
		} else {
			sinks = append(sinks, report.NewInventorySink(inventory.NewSQLiteRepository(db.DB)))
			closers = append(closers, func() {
				if err := db.Close(); err != nil {
					log.Error("error closing database", "error", err)
				}
			})
		}
	}

	if cfg.MQTT.Enabled {
		client, err := mqtt.Connect(ctx, cfg.MQTT)
		if err != nil {
			log.Warn("MQTT unavailable", "error", err)
		} else {
			log.Debug("MQTT connected", "client_id", cfg.MQTT.Broker.ClientID)
			sinks = append(sinks, report.NewMQTTSink(client, client.Topics()))
			closers = append(closers, func() {
				if err := client.Close(); err != nil {
					log.Error("error closing MQTT", "error", err)
				}
			})
		}
	}

	if cfg.InfluxDB.Enabled {
		client, err := influxdb.Connect(ctx, cfg.InfluxDB)
		if err != nil {
			log.Warn("InfluxDB unavailable", "url", cfg.InfluxDB.URL, "error", err)
		} else {
			sinks = append(sinks, report.NewInfluxSink(client))
			closers = append(closers, func() {
				if err := client.Close(); err != nil {
					log.Error("error closing InfluxDB", "error", err)
				}
			})
		}
	}

	cleanup := func() {
		// Close in reverse order of opening.
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return report.Multi(sinks...), cleanup
}

// openInventory opens the inventory database and applies migrations.
func openInventory(ctx context.Context, a *app) (*database.DB, error) {
	cfg := a.cfg.Database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Path,
		WALMode:     cfg.WALMode,
		BusyTimeout: cfg.BusyTimeout,
	})
	if err != nil {
		return nil, err
	}
	applied, err := db.Migrate(ctx, migrations.FS)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if applied > 0 {
		a.log.Info("database migrations applied", "count", applied)
	}
	return db, nil
}

// Package statsd is a helper package that wraps some common statsd methods.
// It hides the datadog dependency so if we decide to migrate away from datadog in the
// future, we only need to edit this single file. Until Init succeeds, every emit goes
// to a no-op client, so callers never need to guard their calls.
package statsd

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// EmitEntityGauge reports the number of currently live entities.
func EmitEntityGauge(liveEntities int) {
	err := Client().Gauge("entities.live", float64(liveEntities), nil, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit entity gauge: %v", err)
	}
}

// EmitMutationCount reports one mutation of entity state. op names the kind of
// mutation (create, destroy, assign, remove); component is the component name, empty
// for entity-level mutations.
func EmitMutationCount(op string, component string) {
	tags := []string{"op:" + op}
	if component != "" {
		tags = append(tags, "component:"+component)
	}
	err := Client().Count("mutations", 1, tags, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit mutation count: %v", err)
	}
}

// EmitSnapshotStat reports the duration of one snapshot stage ("take",
// "restore_validate", "restore_apply") that began at start.
func EmitSnapshotStat(start time.Time, stage string) {
	duration := time.Since(start)
	err := Client().Timing("snapshot", duration, []string{"stage:" + stage}, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit snapshot stat: %v", err)
	}
}

func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace("nexus"),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return err
	}
	// Success! replace the global client
	client = newClient
	return nil
}

// Close flushes buffered metrics and reverts the package to the no-op client.
func Close() error {
	err := client.Close()
	client = &ddstatsd.NoOpClient{}
	if err != nil {
		return eris.Wrap(err, "")
	}
	return nil
}

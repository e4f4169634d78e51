package remote

import "fmt"

// Redis key pattern helpers
//
// All keys and Pub/Sub channels are namespaced by instance name so several
// deployments can safely share a single Redis server.
//
// Key pattern: hanvit:{instance_name}:state
// Channel pattern: hanvit:{instance_name}:state_events

// StateKey returns the Redis key of the singleton state record.
// Pattern: hanvit:{instance_name}:state
func StateKey(instanceName string) string {
	return fmt.Sprintf("hanvit:%s:state", instanceName)
}

// StateEventsChannel returns the Pub/Sub channel name for state update
// events. Pattern: hanvit:{instance_name}:state_events
func StateEventsChannel(instanceName string) string {
	return fmt.Sprintf("hanvit:%s:state_events", instanceName)
}

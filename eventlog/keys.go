package eventlog

import "fmt"

// redisSeqKey holds the number of appended entries.
func redisSeqKey(namespace string) string {
	return fmt.Sprintf("%s:EVENTLOG:SEQ", namespace)
}

// redisEntryKey maps an entry id to its serialized envelope.
func redisEntryKey(namespace string, id EntryID) string {
	return fmt.Sprintf("%s:EVENTLOG:ENTRY-%s", namespace, id)
}

// redisOrderKey holds the list of entry ids in append order.
func redisOrderKey(namespace string) string {
	return fmt.Sprintf("%s:EVENTLOG:ORDER", namespace)
}

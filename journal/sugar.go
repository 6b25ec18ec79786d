package journal

// MaybeRecordEvent records an entry if the journal is live and evtType is
// enabled. It is safe to call with a nil Journal.
func MaybeRecordEvent(journal Journal, evtType EventType, supplier func() interface{}) {
	if journal == nil || journal == nilj {
		return
	}
	if !evtType.Enabled() {
		log.Debugw("dropping disabled journal event", "type", evtType)
		return
	}
	journal.RecordEvent(evtType, supplier)
}

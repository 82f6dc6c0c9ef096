package bridge

import (
	"unsafe"

	"github.com/golang/glog"

	"github.com/VanDung-dev/NamedCache/metrics"
)

// ExportNumericEntriesIPC returns the map's numeric entries as an owned Arrow
// IPC stream (schema: key utf8, value float64) and its length in bytes.
// An existing map with no numeric entries still yields a valid zero-row stream.
// Free the buffer with FreeBuffer.
func (a *Adapter) ExportNumericEntriesIPC(name string) (unsafe.Pointer, int, Status) {
	entries, err := a.store.Maps.NumericEntries(name)
	if err != nil {
		a.metrics.RecordCall(metrics.KindMap, "export_ipc", metrics.OutcomeAbsent)
		return nil, 0, statusFromError(err)
	}

	data, err := a.encoder.EncodeEntries(name, entries)
	if err != nil {
		glog.Errorf("export %q: arrow encode failed: %v", name, err)
		a.metrics.RecordCall(metrics.KindMap, "export_ipc", metrics.OutcomeInternal)
		return nil, 0, StatusInternal
	}

	p := allocBuffer(data)
	if p == nil {
		glog.Errorf("export %q: allocation of %d-byte buffer failed", name, len(data))
		a.metrics.RecordAlloc(metrics.AllocBuffer, false)
		a.metrics.RecordCall(metrics.KindMap, "export_ipc", metrics.OutcomeAllocFailed)
		return nil, 0, StatusAllocFailed
	}

	a.metrics.RecordAlloc(metrics.AllocBuffer, true)
	a.metrics.RecordExport(len(entries))
	a.metrics.RecordCall(metrics.KindMap, "export_ipc", metrics.OutcomeOK)
	return p, len(data), StatusOK
}

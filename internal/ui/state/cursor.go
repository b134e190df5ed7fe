package state

// ScrollTelemetry moves the telemetry cursor by delta, clamped to the log.
func (s *State) ScrollTelemetry(delta int) bool {
	return moveCursorBy(&s.telemetryCursor, delta, s.telemetry.Len())
}

// ScrollStatus moves the status cursor by delta, clamped to the log.
func (s *State) ScrollStatus(delta int) bool {
	return moveCursorBy(&s.statusCursor, delta, s.status.Len())
}

// TelemetryHome moves the telemetry cursor to the oldest entry.
func (s *State) TelemetryHome() bool {
	old := s.telemetryCursor
	s.telemetryCursor = 0
	return old != s.telemetryCursor
}

// TelemetryEnd moves the telemetry cursor to the newest entry.
func (s *State) TelemetryEnd() bool {
	old := s.telemetryCursor
	s.telemetryCursor = lastIndex(s.telemetry.Len())
	return old != s.telemetryCursor
}

func moveCursorBy(cursor *int, delta, length int) bool {
	if length == 0 {
		*cursor = 0
		return false
	}
	old := *cursor
	if *cursor < 0 {
		*cursor = 0
	}
	*cursor += delta
	if *cursor < 0 {
		*cursor = 0
	}
	if *cursor >= length {
		*cursor = length - 1
	}
	return *cursor != old
}

// Window returns the [start, end) slice of a list of length entries that
// keeps cursor visible in height rows, starting from offset. The returned
// offset should be stored for the next frame.
func Window(offset, cursor, length, height int) (start, end int) {
	if length == 0 || height <= 0 {
		return 0, 0
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= length {
		cursor = length - 1
	}
	maxOffset := length - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	if cursor < offset {
		offset = cursor
	}
	if upper := offset + height - 1; cursor > upper {
		offset = cursor - height + 1
	}
	end = offset + height
	if end > length {
		end = length
	}
	return offset, end
}

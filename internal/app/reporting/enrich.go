package reporting

import "context"

// enrichCourse attaches learning-outcome data to an annotated course by
// asking the outcomes collaborator for the course's canonical id.
// Failures are isolated per course: the course stays in the output with
// clo_count 0 and an empty list, the error is only logged, and sibling
// courses in the same batch are unaffected. One read per course is the
// dominant cost of a dashboard build and is kept deliberately, call for
// call, for compatibility with the consumers of this payload.
func (s *Service) enrichCourse(ctx context.Context, course *Annotated, courseID string) {
	if courseID == "" {
		setEmptyOutcomes(course)
		return
	}

	outcomes, err := s.outcomes.ListOutcomes(ctx, courseID)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("courseId", courseID).
			Msg("Outcome lookup failed, attaching empty outcome list")
		if s.metrics != nil {
			s.metrics.OutcomeLookupFailures.Inc()
		}
		setEmptyOutcomes(course)
		return
	}

	if outcomes == nil {
		outcomes = []Record{}
	}
	course.Set("clo_count", len(outcomes)).Set("clos", outcomes)
}

func setEmptyOutcomes(course *Annotated) {
	course.Set("clo_count", 0).Set("clos", []Record{})
}

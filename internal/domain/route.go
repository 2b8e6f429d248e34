package domain

type Route struct {
	ID            int64
	SourceID      int64
	DestinationID int64
	Distance      *int
	Source        *Airport
	Destination   *Airport
}

func (r Route) Validate() error {
	verr := &ValidationError{}
	if r.SourceID == r.DestinationID {
		verr.Add(NonFieldErrors, "The source and destination airports must be different.")
	}
	if r.Distance != nil && *r.Distance < 0 {
		verr.Add("distance", "Ensure this value is greater than or equal to 0.")
	}
	return verr.ErrOrNil()
}

package validators

const (
	datePattern      = `^\d{4}-\d{2}-\d{2}$`
	timeOfDayPattern = `^([01]\d|2[0-3]):[0-5]\d$`
)

package apierrors

const (
	MsgTaskNotFound      = "taskNotFound"
	MsgTaskDeleted       = "taskDeleted"
	MsgTaskAlreadyExists = "taskAlreadyExists"
	MsgInvalidData       = "invalidData"
	MsgFailListTasks     = "failListTasks"
	MsgFailGetTask       = "failGetTask"
	MsgFailCreateTask    = "failCreateTask"
	MsgFailUpdateTask    = "failUpdateTask"
	MsgFailDeleteTask    = "failDeleteTask"
	MsgTooManyRequests   = "tooManyRequests"
	MsgWebsocketRequired = "websocketRequired"

	MsgValidationRequired = "validationRequired"
	MsgValidationMax      = "validationMax"
	MsgValidationOneOf    = "validationOneOf"
	MsgValidationString   = "validationString"
	MsgValidationInvalid  = "validationInvalid"
)

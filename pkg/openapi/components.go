package openapi

// Components holds the schemas and responses shared across operations.
type Components struct {
	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Responses map[string]*Response `json:"responses,omitempty"`
}

// NewComponents returns the shared page request schema and the error responses
// every record endpoint can produce.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number, starting at 1", Example: 1},
					"page_size": {Type: "integer", Description: "Records per page", Example: 20},
					"search":    {Type: "string", Description: "Case-insensitive text matched against the kind's search fields"},
					"sort":      {Type: "string", Description: "Comma separated fields, - prefix for descending", Example: "-expires_on,employee_name"},
				},
			},
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":   errorResponse("Invalid input"),
			"NotFound":     errorResponse("Record not found"),
			"Conflict":     errorResponse("Record conflicts with an existing one"),
			"Unauthorized": errorResponse("Missing or invalid bearer token"),
		},
	}
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}

package ports

import "github.com/ZanzyTHEbar/recent-documents/rdocs/listengine"

// Surface is the rendering side of the list: it draws views and reports
// messages and errors to the user.
type Surface interface {
	Render(view listengine.View)
	Notify(message string)
	Error(message string, err error)
}

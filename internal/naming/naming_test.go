package naming

import (
	"testing"

	"github.com/matryer/is"
)

func TestExported(t *testing.T) {
	is := is.New(t)
	is.Equal(Exported("widgetId"), "WidgetID")
	is.Equal(Exported("widget_id"), "WidgetID")
	is.Equal(Exported("widgets.parts.list"), "WidgetsPartsList")
	is.Equal(Exported("pageToken"), "PageToken")
	is.Equal(Exported("callbackUrl"), "CallbackURL")
}

func TestUnexported(t *testing.T) {
	is := is.New(t)
	is.Equal(Unexported("widgetId"), "widgetID")
	is.Equal(Unexported("id"), "id")
	is.Equal(Unexported("type"), "type_")
	is.Equal(Unexported("string"), "string_")
	is.Equal(Unexported("urlMap"), "urlMap")
	is.Equal(Unexported(""), "_")
}

func TestKebab(t *testing.T) {
	is := is.New(t)
	is.Equal(Kebab("widgets.parts.list"), "widgets-parts-list")
	is.Equal(Kebab("pageSize"), "page-size")
	is.Equal(Kebab("ping"), "ping")
}

func TestPackage(t *testing.T) {
	is := is.New(t)
	is.Equal(Package("foo", "v1"), "foov1")
	is.Equal(Package("Cloud-Run", "v1beta.2"), "cloudrunv1beta2")
	is.Equal(Package("3d", "v1"), "api3dv1")
	is.Equal(Package("", ""), "api")
}

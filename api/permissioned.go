package api

import (
	"github.com/filecoin-project/go-jsonrpc/auth"
)

const (
	PermRead  auth.Permission = "read" // default
	PermWrite auth.Permission = "write"
	PermAdmin auth.Permission = "admin" // Manage permissions
)

var AllPermissions = []auth.Permission{PermRead, PermWrite, PermAdmin}
var DefaultPerms = []auth.Permission{PermRead}

func PermissionedFileBankAPI(a FileBank) FileBank {
	var out FileBankStruct
	auth.PermissionedProxy(AllPermissions, DefaultPerms, a, &out.Internal)
	auth.PermissionedProxy(AllPermissions, DefaultPerms, a, &out.CommonStruct.Internal)
	return &out
}

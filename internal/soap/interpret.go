package soap

import (
	"github.com/fivetwenty-io/ews-client/internal/constants"
	"github.com/fivetwenty-io/ews-client/pkg/ews"
)

// Interpret turns a parsed response into a FindFolder result. A fault stops
// interpretation; otherwise every t:Folder in the Body becomes a record.
func Interpret(doc *Document) *ews.FindFolderResult {
	if fault := doc.Body.Child(doc.Envelope.Name.Space, "Fault"); fault != nil {
		return &ews.FindFolderResult{
			Fault:   interpretFault(fault),
			Folders: []ews.Folder{},
		}
	}

	response := doc.Body.Find(constants.NamespaceMessages, "FindFolderResponse")
	if response == nil {
		return &ews.FindFolderResult{Folders: []ews.Folder{}}
	}

	result := &ews.FindFolderResult{
		HasPayload:   true,
		ResponseCode: constants.NotAvailable,
	}

	message := response.Find(constants.NamespaceMessages, "FindFolderResponseMessage")
	if message == nil {
		message = response
	} else if class, ok := message.Attr("ResponseClass"); ok {
		result.ResponseClass = class
	}

	if code := message.Find(constants.NamespaceMessages, "ResponseCode"); code != nil {
		result.ResponseCode = code.Text()
	}

	if text := message.Find(constants.NamespaceMessages, "MessageText"); text != nil {
		result.MessageText = text.Text()
	}

	folders := doc.Body.FindAll(constants.NamespaceTypes, "Folder")

	result.Folders = make([]ews.Folder, 0, len(folders))
	for _, folder := range folders {
		result.Folders = append(result.Folders, interpretFolder(folder))
	}

	return result
}

// interpretFolder resolves each field on its own so one missing child does
// not hide the others.
func interpretFolder(folder *Element) ews.Folder {
	record := ews.Folder{
		FolderID:    constants.NotAvailable,
		DisplayName: constants.NotAvailable,
		TotalCount:  constants.NotAvailable,
	}

	if folderID := folder.Find(constants.NamespaceTypes, "FolderId"); folderID != nil {
		if id, ok := folderID.Attr("Id"); ok {
			record.FolderID = id
		}
	}

	if name := folder.Find(constants.NamespaceTypes, "DisplayName"); name != nil {
		record.DisplayName = name.Text()
	}

	if count := folder.Find(constants.NamespaceTypes, "TotalCount"); count != nil {
		record.TotalCount = count.Text()
	}

	return record
}

// interpretFault reads SOAP 1.1 (faultcode, faultstring) and SOAP 1.2
// (Code/Value, Reason/Text) faults. Code and string are copied verbatim.
// Exchange puts its own response code in the detail element.
func interpretFault(fault *Element) *ews.Fault {
	result := &ews.Fault{}

	if code := fault.ChildLocal("faultcode"); code != nil {
		result.Code = code.RawText()
	} else if code := fault.ChildLocal("Code"); code != nil {
		if value := code.ChildLocal("Value"); value != nil {
			result.Code = value.RawText()
		}
	}

	if text := fault.ChildLocal("faultstring"); text != nil {
		result.String = text.RawText()
	} else if reason := fault.ChildLocal("Reason"); reason != nil {
		if text := reason.ChildLocal("Text"); text != nil {
			result.String = text.RawText()
		}
	}

	if actor := fault.ChildLocal("faultactor"); actor != nil {
		result.Actor = actor.Text()
	} else if role := fault.ChildLocal("Role"); role != nil {
		result.Actor = role.Text()
	}

	detail := fault.ChildLocal("detail")
	if detail == nil {
		detail = fault.ChildLocal("Detail")
	}

	if detail != nil {
		for _, child := range detail.Children {
			if child.Name.Local == "ResponseCode" {
				result.Detail = child.Text()

				break
			}
		}
	}

	return result
}

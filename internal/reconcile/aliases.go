package reconcile

// builtinAliases groups normalized names that describe the same application.
// Scanners and package managers disagree about display names for these, so
// the fuzzy tier treats every member of a group as equivalent.
var builtinAliases = map[string][]string{
	"visualstudiocode": {"vscode", "code"},
	"googlechrome":     {"chrome"},
	"mozillafirefox":   {"firefox"},
	"microsoftedge":    {"edge", "msedge"},
	"microsoftword":    {"word", "winword"},
	"microsoftexcel":   {"excel"},
	"microsoftpowerpoint": {"powerpoint"},
	"microsoftoutlook": {"outlook"},
	"intellijidea":     {"idea"},
	"sublimetext":      {"sublime", "subl"},
	"libreofficewriter": {"lowriter"},
	"libreofficecalc":  {"localc"},
	"gimpimageeditor":  {"gimp"},
	"vlcmediaplayer":   {"vlc"},
	"windowsterminal":  {"terminal", "wt"},
}

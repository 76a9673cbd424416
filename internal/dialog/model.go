package dialog

type State string

const (
	// Registration
	StateIdle         State = "idle"
	StateAwaitName    State = "await_name"
	StateAwaitConfirm State = "await_confirm"

	// Booking flow (member)
	StateBookPickMachine State = "book_pick_machine"
	StateBookPickDate    State = "book_pick_date"
	StateBookPickStart   State = "book_pick_start"
	StateBookPickEnd     State = "book_pick_end"
	StateBookNotes       State = "book_notes"
	StateBookConfirm     State = "book_confirm"

	// My reservations
	StateResList State = "res_list"

	// Admin: machine catalog
	StateAdmMachMenu    State = "adm_mach_menu"
	StateAdmMachList    State = "adm_mach_list"
	StateAdmMachItem    State = "adm_mach_item"
	StateAdmMachID      State = "adm_mach_id"     // machine id on create
	StateAdmMachName    State = "adm_mach_name"   // name on create
	StateAdmMachCat     State = "adm_mach_cat"    // category pick on create
	StateAdmMachRate    State = "adm_mach_rate"   // hourly rate on create
	StateAdmMachRename  State = "adm_mach_rename" // new name for selected machine
	StateAdmMachNewRate State = "adm_mach_new_rate"

	// Admin: holidays
	StateAdmHolMenu State = "adm_hol_menu"
	StateAdmHolAdd  State = "adm_hol_add" // awaiting YYYY-MM-DD
	StateAdmHolList State = "adm_hol_list"

	// Admin: subscriptions
	StateAdmSubsMenu     State = "adm_subs_menu"
	StateAdmSubsPickUser State = "adm_subs_pick_user"
	StateAdmSubsPickType State = "adm_subs_pick_type"
	StateAdmSubsHours    State = "adm_subs_hours" // explicit monthly quota, 0 = default
	StateAdmSubsConfirm  State = "adm_subs_confirm"

	// Admin: monthly export
	StateAdmExportMonth State = "adm_export_month" // awaiting YYYY-MM
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}

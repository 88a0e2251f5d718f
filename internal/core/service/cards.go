package service

// Template names the core requests from the card store. The files live in
// the cards directory configured at startup.
const (
	CardFileEntree       = "EntreeOptions.json"
	CardFileRedoEntree   = "RedoEntreeOptions.json"
	CardFileDrink        = "DrinkOptions.json"
	CardFileRedoDrink    = "RedoDrinkOptions.json"
	CardFileReview       = "ReviewOrder.json"
	CardFileRecentOrders = "RecentOrders.json"
	CardFileConfirmation = "Confirmation.json"
	CardFileErrorOptions = "ErrorOptions.json"
	CardFileBland        = "BlandCard.json"
)

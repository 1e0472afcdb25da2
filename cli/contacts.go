// ABOUTME: Interactive contact command handlers
// ABOUTME: Add, show, change, rename, delete, and search flows
package cli

import (
	"fmt"
	"strconv"

	"github.com/harperreed/abook/models"
)

func (r *REPL) addContact(_ []string) (string, error) {
	r.presenter.Println(r.presenter.Info(
		"Let's create a new contact. Name is required. Other fields are optional."))
	r.presenter.Println(r.presenter.Info("Press Enter to skip any optional field."))

	name, ok := r.askRequired("Name (required): ", "Name")
	if !ok {
		return cancelledMessage, nil
	}

	if r.repository.HasContact(name) {
		return r.presenter.Warning("Contact already exists, please use change to modify."), nil
	}

	contact, err := models.NewContact(name)
	if err != nil {
		return "", err
	}
	r.repository.AddContact(contact)

	r.askOptionalField("Phone (optional) "+r.presenter.Hint("[380XXXXXXXXX]")+": ", contact.AddPhone)
	r.askOptionalField("Email (optional): ", contact.AddEmail)

	if address, ok := r.ask("Address (optional): "); ok && address != "" {
		contact.SetAddress(address)
	}

	r.askOptionalField("Birthday (optional) "+r.presenter.Hint("[dd.mm.yyyy]")+": ", contact.SetBirthday)

	return r.presenter.Success("Contact added."), nil
}

// askOptionalField prompts until the setter accepts the value or the user
// skips with an empty input.
func (r *REPL) askOptionalField(label string, set func(string) error) {
	for {
		value, ok := r.ask(label)
		if !ok || value == "" {
			return
		}
		if err := set(value); err != nil {
			r.presenter.Println(r.presenter.Error(
				fmt.Sprintf("%s Please try again or press Enter to skip.", formatError(err))))
			continue
		}
		return
	}
}

func (r *REPL) showContact(_ []string) (string, error) {
	name, ok := r.ask("Enter the name to show contact: ")
	if !ok || name == "" {
		return cancelledMessage, nil
	}

	contact := r.repository.FindContact(name)
	if contact == nil {
		return "", fmt.Errorf("contact %q: %w", name, models.ErrNotFound)
	}

	r.presenter.PrintContactsTable([]*models.Contact{contact})
	return "", nil
}

func (r *REPL) showAllContacts(_ []string) (string, error) {
	contacts := r.repository.Contacts()
	if len(contacts) == 0 {
		return r.presenter.Warning("No contacts stored."), nil
	}
	r.presenter.PrintContactsTable(contacts)
	return "", nil
}

func (r *REPL) changeContact(_ []string) (string, error) {
	for {
		r.presenter.Println(r.presenter.Info("\nChoose what you want to edit:\n"))
		r.presenter.Println("1. Name")
		r.presenter.Println("2. Phone")
		r.presenter.Println("3. Email")
		r.presenter.Println("4. Address")
		r.presenter.Println("5. Birthday")
		r.presenter.Println("6. Return\n")

		choice, ok := r.ask("Enter your choice: ")
		if !ok || choice == "" || choice == "6" {
			return "Return to main menu", nil
		}
		if choice < "1" || choice > "5" || len(choice) != 1 {
			r.presenter.Println(r.presenter.Error(
				"Invalid choice. Please enter a number from 1 to 6."))
			continue
		}

		name, ok := r.ask("Enter the EXISTING contact name to edit: ")
		if !ok || name == "" {
			return "Return to main menu", nil
		}

		contact := r.repository.FindContact(name)
		if contact == nil {
			return "", fmt.Errorf("contact %q: %w", name, models.ErrNotFound)
		}

		var result string
		var cancelled bool
		var err error
		switch choice {
		case "1":
			result, cancelled, err = r.changeName(contact)
		case "2":
			result, cancelled = r.changeListField(contact, name, "phone",
				contactPhones(contact), contact.AddPhone, contact.EditPhone, contact.FindPhone)
		case "3":
			result, cancelled = r.changeListField(contact, name, "email",
				contactEmails(contact), contact.AddEmail, contact.EditEmail, contact.FindEmail)
		case "4":
			result, cancelled = r.changeAddress(contact, name)
		case "5":
			result, cancelled = r.changeBirthday(contact, name)
		}
		if err != nil {
			return "", err
		}
		if cancelled {
			return "Return to main menu", nil
		}
		return result, nil
	}
}

func (r *REPL) changeName(contact *models.Contact) (result string, cancelled bool, err error) {
	currentName := contact.Name
	r.presenter.Println(r.presenter.Info("\nCurrent contact name: " + currentName))

	newName, ok := r.ask("Enter the NEW name for this contact: ")
	if !ok || newName == "" {
		return "", true, nil
	}

	if err := r.repository.RenameContact(currentName, newName); err != nil {
		return "", false, err
	}
	return r.presenter.Success(
		fmt.Sprintf("Contact name changed from %s to %s.", currentName, newName)), false, nil
}

func contactPhones(contact *models.Contact) func() []string {
	return func() []string {
		values := make([]string, len(contact.Phones))
		for i, p := range contact.Phones {
			values[i] = string(p)
		}
		return values
	}
}

func contactEmails(contact *models.Contact) func() []string {
	return func() []string {
		values := make([]string, len(contact.Emails))
		for i, e := range contact.Emails {
			values[i] = string(e)
		}
		return values
	}
}

// changeListField drives the shared phone/email editing flow: offer to add
// when the list is empty, otherwise select by number or literal value, then
// replace with a validated new value.
func (r *REPL) changeListField(
	contact *models.Contact,
	name, fieldName string,
	values func() []string,
	add func(string) error,
	edit func(string, string) error,
	find func(string) bool,
) (result string, cancelled bool) {
	existing := values()

	if len(existing) == 0 {
		r.presenter.Println(r.presenter.Info(
			fmt.Sprintf("This contact has no %s values.", fieldName)))
		answer, ok := r.ask(fmt.Sprintf("Would you like to add a new %s? (y/n): ", fieldName))
		if !ok || answer == "" {
			return "", true
		}
		if answer != "y" {
			return r.presenter.Info("No changes made."), false
		}
		for {
			value, ok := r.ask(fmt.Sprintf("Enter new %s: ", fieldName))
			if !ok || value == "" {
				return "", true
			}
			if err := add(value); err != nil {
				r.presenter.Println(r.presenter.Error(
					fmt.Sprintf("%s Please try again.", formatError(err))))
				continue
			}
			return r.presenter.Success(
				fmt.Sprintf("New %s added to contact %s.", fieldName, name)), false
		}
	}

	r.presenter.Println(r.presenter.Info(
		fmt.Sprintf("\nExisting %s values:", fieldName)))
	for i, value := range existing {
		r.presenter.Printf("  %d. %s\n", i+1, value)
	}

	var oldValue string
	for {
		selection, ok := r.ask(fmt.Sprintf(
			"\nEnter the number of the %s to edit (or enter the value directly): ", fieldName))
		if !ok || selection == "" {
			return "", true
		}

		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 1 || idx > len(existing) {
				r.presenter.Println(r.presenter.Error(fmt.Sprintf(
					"Invalid selection. Please enter a number between 1 and %d.", len(existing))))
				continue
			}
			oldValue = existing[idx-1]
			break
		}

		if find(selection) {
			oldValue = selection
			break
		}
		r.presenter.Println(r.presenter.Error(
			fmt.Sprintf("%s %s not found. Please try again.", fieldName, selection)))
	}

	for {
		newValue, ok := r.ask(fmt.Sprintf("Enter new %s: ", fieldName))
		if !ok || newValue == "" {
			return "", true
		}
		if err := edit(oldValue, newValue); err != nil {
			r.presenter.Println(r.presenter.Error(
				fmt.Sprintf("%s Please try again.", formatError(err))))
			continue
		}
		return r.presenter.Success(fmt.Sprintf(
			"%s for %s changed from %s to %s.", fieldName, name, oldValue, newValue)), false
	}
}

func (r *REPL) changeAddress(contact *models.Contact, name string) (result string, cancelled bool) {
	if contact.Address != "" {
		r.presenter.Println(r.presenter.Info("Current address: " + contact.Address))
	}
	newAddress, ok := r.ask("Enter new address: ")
	if !ok || newAddress == "" {
		return "", true
	}
	contact.SetAddress(newAddress)
	return r.presenter.Success(
		fmt.Sprintf("Address for %s updated to: %s.", name, newAddress)), false
}

func (r *REPL) changeBirthday(contact *models.Contact, name string) (result string, cancelled bool) {
	if contact.Birthday != nil {
		r.presenter.Println(r.presenter.Info("Current birthday: " + contact.Birthday.String()))
	}
	for {
		value, ok := r.ask("Enter new birthday " + r.presenter.Hint("[dd.mm.yyyy]") + ": ")
		if !ok || value == "" {
			return "", true
		}
		if err := contact.SetBirthday(value); err != nil {
			r.presenter.Println(r.presenter.Error(
				fmt.Sprintf("%s Please try again.", formatError(err))))
			continue
		}
		return r.presenter.Success(
			fmt.Sprintf("Birthday for %s updated to: %s.", name, value)), false
	}
}

func (r *REPL) renameContact(_ []string) (string, error) {
	r.presenter.Println(r.presenter.Info("Let's update a contact name. Please enter the contact name."))

	name, ok := r.askRequired("Name (required): ", "Name")
	if !ok {
		return cancelledMessage, nil
	}
	if !r.repository.HasContact(name) {
		return "", fmt.Errorf("contact %q: %w", name, models.ErrNotFound)
	}

	newName, ok := r.askRequired("New name (required): ", "New name")
	if !ok {
		return cancelledMessage, nil
	}

	if err := r.repository.RenameContact(name, newName); err != nil {
		return "", err
	}
	return r.presenter.Success(
		fmt.Sprintf("Contact name changed from %s to %s.", name, newName)), nil
}

func (r *REPL) deleteContact(_ []string) (string, error) {
	r.presenter.Println(r.presenter.Info("Let's delete a contact. Please enter the contact name."))

	name, ok := r.askRequired("Name (required): ", "Name")
	if !ok {
		return cancelledMessage, nil
	}
	if !r.repository.HasContact(name) {
		return "", fmt.Errorf("contact %q: %w", name, models.ErrNotFound)
	}

	r.presenter.Println(r.presenter.Warning("Do you really want to remove this contact?"))
	answer, _ := r.ask("(y/n): ")
	if answer != "y" {
		return r.presenter.Info(cancelledMessage), nil
	}

	r.repository.DeleteContact(name)
	return r.presenter.Success(fmt.Sprintf("Contact %s deleted successfully.", name)), nil
}

func (r *REPL) deletePhone(_ []string) (string, error) {
	r.presenter.Println(r.presenter.Info(
		"Let's delete a phone number from a contact. Please enter the contact name."))

	name, ok := r.askRequired("Name (required): ", "Name")
	if !ok {
		return cancelledMessage, nil
	}
	contact := r.repository.FindContact(name)
	if contact == nil {
		return "", fmt.Errorf("contact %q: %w", name, models.ErrNotFound)
	}

	r.presenter.PrintContactsTable([]*models.Contact{contact})

	if len(contact.Phones) == 0 {
		return r.presenter.Error("This contact doesn't have a phone number. Nothing to delete."), nil
	}

	phone, ok := r.askRequired("Phone to delete (required): ", "Phone")
	if !ok {
		return cancelledMessage, nil
	}

	if err := contact.RemovePhone(phone); err != nil {
		return "", err
	}
	return r.presenter.Success(
		fmt.Sprintf("Phone %s removed from contact %s.", phone, name)), nil
}

// searchContacts tries the exact substring search first and falls back to
// the fuzzy ranking only when it finds nothing.
func (r *REPL) searchContacts(_ []string) (string, error) {
	query, ok := r.askRequired("Query string (required): ", "Query")
	if !ok {
		return cancelledMessage, nil
	}

	exact := r.repository.SearchContacts(query)
	if len(exact) > 0 {
		r.presenter.Println(r.presenter.Info(
			fmt.Sprintf("\nFound %d contact(s):", len(exact))))
		r.presenter.PrintContactsTable(exact)
		return "", nil
	}

	closest := r.repository.SearchClosestContacts(query)
	if len(closest) > 0 {
		r.presenter.Println(r.presenter.Warning(
			fmt.Sprintf("\nNo exact matches for %q.", query)))
		r.presenter.Println(r.presenter.Info("Most similar contacts:"))
		r.presenter.PrintContactsTable(closest)
		return "", nil
	}

	return r.presenter.Warning(fmt.Sprintf("No contacts found matching %q.", query)), nil
}

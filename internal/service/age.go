package service

import "time"

const dobLayout = "2006-01-02"

// calculateAge derives age from a date of birth by calendar-year
// subtraction, decremented when the birthday has not yet occurred this
// year. Not elapsed-days division: someone born 2014-03-01 is 10 on
// 2024-03-01 even across leap years.
func calculateAge(dob string, now time.Time) (int, error) {
	birth, err := time.Parse(dobLayout, dob)
	if err != nil {
		return 0, err
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, nil
}

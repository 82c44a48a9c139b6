package email

import "fmt"

// BirthdayText returns the plain-text body for a birthday email.
func BirthdayText(name, clubName string) string {
	return fmt.Sprintf(`Hola %s 👋

🎂 ¡%s te desea un muy feliz cumpleaños!

Que tengas un gran día lleno de alegría y buenos momentos 🎾🎈

¡Te esperamos para celebrarlo en el club!

Saludos,
%s`, name, clubName, clubName)
}

// BirthdayHTML returns the HTML body for a birthday email. cid references
// the inline card image.
func BirthdayHTML(name, clubName, cid string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <p>Hola %s 👋🎉</p>
  <br>
  <p>¡<strong>%s</strong> te desea un muy feliz cumpleaños!🎂</p>
  <div style="text-align: center; margin: 25px 0;">
    <img src="cid:%s" alt="Feliz cumple" style="width:65%%; max-width:360px; border-radius:16px; box-shadow: 0 4px 12px rgba(0,0,0,0.15);"/>
  </div>
  <p>¡Te esperamos para celebrarlo en el club! 🎾🥳</p>
  <br>
  <p>Saludos,</p>
  <p style="font-size: 0.9em; color: #888;">%s</p>
</body>
</html>`, name, clubName, cid, clubName)
}
